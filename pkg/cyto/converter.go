package cyto

import (
	"fmt"
	"math"
	"strconv"

	"github.com/orbifold/cytoconv/pkg/identifier"
)

// Converter performs conversions with a specific identifier generator.
// The zero value uses the process-wide default generator.
type Converter struct {
	IDs identifier.Generator
}

// NewConverter returns a converter drawing ids from ids.
func NewConverter(ids identifier.Generator) *Converter {
	return &Converter{IDs: ids}
}

func (c *Converter) newID() string {
	if c == nil || c.IDs == nil {
		return identifier.New()
	}
	return c.IDs.NewID()
}

var std = &Converter{}

// ToCyNode converts an attribute bag into a node element.
func ToCyNode(v any) (Element, error) { return std.ToCyNode(v) }

// ToCyNodes converts a sequence of attribute bags into node elements.
func ToCyNodes[T any](vs []T) ([]Element, error) { return convertAll(vs, "node", std.ToCyNode) }

// ToCyEdge converts an attribute bag into an edge element.
func ToCyEdge(v any) (Element, error) { return std.ToCyEdge(v) }

// ToCyEdges converts a sequence of attribute bags into edge elements.
func ToCyEdges[T any](vs []T) ([]Element, error) { return convertAll(vs, "edge", std.ToCyEdge) }

// ToElements flattens g into an element list.
func ToElements(g *Graph) ([]Element, error) { return std.ToElements(g) }

// ToCytoGraph is an alias for [ToElements].
func ToCytoGraph(g *Graph) ([]Element, error) { return std.ToElements(g) }

// ToQwieryGraph rebuilds a graph from an element list.
func ToQwieryGraph(elements any) (*Graph, error) { return std.ToQwieryGraph(elements) }

func convertAll[T any](vs []T, what string, fn func(any) (Element, error)) ([]Element, error) {
	out := make([]Element, 0, len(vs))
	for i, v := range vs {
		el, err := fn(v)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", what, i, err)
		}
		out = append(out, el)
	}
	return out, nil
}

// normalizeID formats numeric ids as strings. Other values, such as a
// boolean or a nested mapping, are kept as given.
func normalizeID(v any) any {
	if s, ok := identifierString(v); ok {
		return s
	}
	return v
}

// identifierString normalizes an id or endpoint value to a string.
// Strings pass through and numbers are formatted without trailing zeros.
func identifierString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}
