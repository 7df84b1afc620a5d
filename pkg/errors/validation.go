package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxGraphIDLength bounds identifiers accepted by the store and HTTP API.
const maxGraphIDLength = 256

// ValidateGraphID validates a graph identifier before it is used as a storage
// key or URL segment.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateGraphID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "graph id cannot be empty")
	}

	if len(id) > maxGraphIDLength {
		return New(ErrCodeInvalidInput, "graph id too long (max %d characters)", maxGraphIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "graph id contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "graph id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFormat checks that a file extension names a supported
// serialization format. An empty extension is accepted and means JSON.
func ValidateFormat(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".json", ".yaml", ".yml":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported file format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}
