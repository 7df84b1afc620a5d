// Package store persists generic graphs by id.
//
// A graph's id is not encoded in its element list, so a graph converted to
// elements and back comes out with a fresh id. Stores keep the original id
// and are the usual way to recover it:
//
//	_ = st.Save(ctx, g)
//	els, _ := cyto.ToElements(g)
//	back, _ := cyto.ToQwieryGraph(els)
//	back.ID = g.ID
//
// Implementations:
//   - [MemoryStore]: in-process, for the server default and tests
//   - [FileStore]: one JSON file per graph, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Missing ids fail with errors.ErrCodeNotFound. Ids are checked with
// errors.ValidateGraphID before use.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// Store is the interface for graph storage backends.
type Store interface {
	// Save inserts or replaces g under g.ID.
	Save(ctx context.Context, g *cyto.Graph) error

	// Get returns the graph stored under id.
	Get(ctx context.Context, id string) (*cyto.Graph, error)

	// Delete removes the graph stored under id.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored graphs ordered by id.
	List(ctx context.Context) ([]Summary, error)

	// Close releases backend resources.
	Close() error
}

// Summary describes a stored graph without its contents.
type Summary struct {
	ID        string    `json:"id"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	UpdatedAt time.Time `json:"updated_at"`
}

func summarize(g *cyto.Graph, at time.Time) Summary {
	return Summary{ID: g.ID, Nodes: g.NodeCount(), Edges: g.EdgeCount(), UpdatedAt: at}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "graph %q not found", id)
}

func checkGraph(g *cyto.Graph) error {
	if g == nil {
		return errors.InvalidInput("graph is nil")
	}
	return errors.ValidateGraphID(g.ID)
}

// encodeGraph and decodeGraph give every backend the same JSON shape, so
// stored graphs read back with JSON number semantics.
func encodeGraph(g *cyto.Graph) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode graph %q", g.ID)
	}
	return data, nil
}

func decodeGraph(id string, data []byte) (*cyto.Graph, error) {
	var g cyto.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode graph %q", id)
	}
	return &g, nil
}
