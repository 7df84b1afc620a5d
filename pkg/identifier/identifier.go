// Package identifier supplies the unique string identifiers attached to
// converted elements and graphs.
//
// A [Generator] is injected wherever identifiers are minted. The process-wide
// default produces random UUIDs; tests substitute a deterministic [Sequence].
//
//	id := identifier.New()                       // default generator
//	seq := identifier.NewSequence("n")           // n1, n2, n3, ...
//	restore := identifier.SetDefault(seq)
//	defer restore()
package identifier

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a new unique string on each call.
// Implementations must be safe for concurrent use.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func() string

// NewID calls f.
func (f GeneratorFunc) NewID() string { return f() }

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID returns a new random UUID string.
func (UUID) NewID() string { return uuid.NewString() }

// Sequence generates prefix1, prefix2, ... and is intended for tests and
// reproducible output.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequence creates a sequence generator starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.prefix + strconv.Itoa(s.next)
	s.next++
	return id
}

var (
	defaultMu  sync.RWMutex
	defaultGen Generator = UUID{}
)

// Default returns the process-wide generator.
func Default() Generator {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultGen
}

// SetDefault replaces the process-wide generator and returns a function
// restoring the previous one. A nil g is ignored.
func SetDefault(g Generator) (restore func()) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultGen
	if g != nil {
		defaultGen = g
	}
	return func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		defaultGen = prev
	}
}

// New returns an identifier from the process-wide generator.
func New() string {
	return Default().NewID()
}

// FromName resolves a generator by its configuration name.
// "uuid" (or "") selects [UUID]; "sequence" selects a [Sequence] using prefix.
func FromName(name, prefix string) (Generator, bool) {
	switch name {
	case "", "uuid":
		return UUID{}, true
	case "sequence":
		return NewSequence(prefix), true
	default:
		return nil, false
	}
}
