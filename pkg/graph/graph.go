package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateFormat(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return JSON, nil
	}
}

// ParseFormat resolves a format name such as "json", "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", name)
	}
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph encodes g in format f.
func MarshalGraph(g *cyto.Graph, f Format) ([]byte, error) {
	return marshal(g, f)
}

// UnmarshalGraph decodes a graph document.
func UnmarshalGraph(data []byte, f Format) (*cyto.Graph, error) {
	return ReadGraph(bytes.NewReader(data), f)
}

// WriteGraph writes g to w in format f.
func WriteGraph(g *cyto.Graph, w io.Writer, f Format) error {
	return encode(g, w, f)
}

// ReadGraph decodes a graph document from r.
func ReadGraph(r io.Reader, f Format) (*cyto.Graph, error) {
	var g cyto.Graph
	if err := decode(r, f, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// WriteGraphFile writes g to path, choosing the format from its extension.
func WriteGraphFile(g *cyto.Graph, path string) error {
	return writeFile(path, g)
}

// ReadGraphFile reads a graph document, choosing the format from the
// extension of path.
func ReadGraphFile(path string) (*cyto.Graph, error) {
	var g cyto.Graph
	if err := readFile(path, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// =============================================================================
// Element Serialization API
// =============================================================================

// MarshalElements encodes an element list in format f. A nil list encodes
// as an empty array.
func MarshalElements(els []cyto.Element, f Format) ([]byte, error) {
	return marshal(nonNil(els), f)
}

// UnmarshalElements decodes an element array.
func UnmarshalElements(data []byte, f Format) ([]cyto.Element, error) {
	return ReadElements(bytes.NewReader(data), f)
}

// WriteElements writes an element list to w in format f.
func WriteElements(els []cyto.Element, w io.Writer, f Format) error {
	return encode(nonNil(els), w, f)
}

// ReadElements decodes an element array from r. Entries without a
// recognized group are kept; the converters skip them.
func ReadElements(r io.Reader, f Format) ([]cyto.Element, error) {
	var els []cyto.Element
	if err := decode(r, f, &els); err != nil {
		return nil, err
	}
	return nonNil(els), nil
}

// WriteElementsFile writes an element list to path, choosing the format
// from its extension.
func WriteElementsFile(els []cyto.Element, path string) error {
	return writeFile(path, nonNil(els))
}

// ReadElementsFile reads an element array, choosing the format from the
// extension of path.
func ReadElementsFile(path string) ([]cyto.Element, error) {
	var els []cyto.Element
	if err := readFile(path, &els); err != nil {
		return nil, err
	}
	return nonNil(els), nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func nonNil(els []cyto.Element) []cyto.Element {
	if els == nil {
		return []cyto.Element{}
	}
	return els
}

func marshal(v any, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(v, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(v any, w io.Writer, f Format) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		return enc.Close()
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
}

func decode(r io.Reader, f Format, v any) error {
	switch f {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		return nil
	case JSON, "":
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
}

func writeFile(path string, v any) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer out.Close()
	return encode(v, out, f)
}

func readFile(path string, v any) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer in.Close()
	return decode(in, f, v)
}
