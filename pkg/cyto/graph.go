package cyto

import (
	"reflect"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// Graph is the generic graph model: an identifier and ordered node and edge
// attribute bags.
type Graph struct {
	ID    string        `json:"id,omitempty" yaml:"id,omitempty"`
	Nodes []attrs.Attrs `json:"nodes" yaml:"nodes"`
	Edges []attrs.Attrs `json:"edges" yaml:"edges"`
}

// ToElements flattens g into an element list: all nodes in order, then all
// edges in order.
//
// A nil graph yields nil. A graph without nodes yields an empty list, even
// when it has edges. The graph id is not encoded.
func (c *Converter) ToElements(g *Graph) ([]Element, error) {
	if g == nil {
		return nil, nil
	}
	if len(g.Nodes) == 0 {
		return []Element{}, nil
	}

	nodes, err := convertAll(g.Nodes, "node", c.ToCyNode)
	if err != nil {
		return nil, err
	}
	if len(g.Edges) == 0 {
		return nodes, nil
	}
	edges, err := convertAll(g.Edges, "edge", c.ToCyEdge)
	if err != nil {
		return nil, err
	}

	// every edge must carry an id
	for i := range edges {
		if edges[i].ID() == "" {
			edges[i].Data["id"] = c.newID()
		}
	}
	return append(nodes, edges...), nil
}

// ToQwieryGraph rebuilds a graph from an element list. elements must be a
// slice ([]Element, []any, []attrs.Attrs, ...), otherwise INVALID_INPUT is
// returned.
//
// The result gets a freshly generated id; the original graph id cannot be
// recovered from elements and must be restored by the caller. Nodes and
// edges keep their relative order. Entries that are neither nodes nor edges
// are skipped.
func (c *Converter) ToQwieryGraph(elements any) (*Graph, error) {
	rv := reflect.ValueOf(elements)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.InvalidInput("expected a sequence of elements, got %T", elements)
	}

	g := &Graph{
		ID:    c.newID(),
		Nodes: []attrs.Attrs{},
		Edges: []attrs.Attrs{},
	}
	for i := 0; i < rv.Len(); i++ {
		cl := Classify(rv.Index(i).Interface())
		switch {
		case cl.Kind == KindNode:
			g.Nodes = append(g.Nodes, plainNode(cl.Element, cl.Raw))
		case cl.Kind == KindEdge:
			g.Edges = append(g.Edges, plainEdge(cl.Element))
		case cl.Kind == KindInstance && cl.Instance.Group() == GroupNodes:
			g.Nodes = append(g.Nodes, plainInstance(cl.Instance))
		case cl.Kind == KindInstance && cl.Instance.Group() == GroupEdges:
			g.Edges = append(g.Edges, plainInstance(cl.Instance))
		}
	}
	return g, nil
}

// NodeCount returns the number of nodes in g.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in g.
func (g *Graph) EdgeCount() int { return len(g.Edges) }
