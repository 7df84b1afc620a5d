package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
)

type memoryEntry struct {
	data    []byte
	summary Summary
}

// MemoryStore keeps encoded graphs in a map. Callers never share storage
// with the store: graphs are copied on Save and Get.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(ctx context.Context, g *cyto.Graph) error {
	if err := checkGraph(g); err != nil {
		return err
	}
	data, err := encodeGraph(g)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[g.ID] = memoryEntry{data: data, summary: summarize(g, time.Now().UTC())}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*cyto.Graph, error) {
	if err := errors.ValidateGraphID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return decodeGraph(id, e.data)
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateGraphID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return notFound(id)
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.summary)
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
