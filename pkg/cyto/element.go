package cyto

import (
	"github.com/orbifold/cytoconv/pkg/attrs"
)

// Group tags an element as a node or an edge.
type Group string

// Element groups.
const (
	GroupNodes Group = "nodes"
	GroupEdges Group = "edges"
)

// Valid reports whether g is one of the two recognized groups.
func (g Group) Valid() bool {
	return g == GroupNodes || g == GroupEdges
}

// Position is the 2-D location of a node element.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Element is a single node or edge in Cytoscape's flat-array notation.
//
// Node elements always carry a Position; edge elements never do and instead
// hold "source" and "target" inside Data.
type Element struct {
	Group    Group       `json:"group" yaml:"group"`
	Data     attrs.Attrs `json:"data" yaml:"data"`
	Position *Position   `json:"position,omitempty" yaml:"position,omitempty"`
}

// ID returns data.id, or "" when it is missing or not a string.
func (e Element) ID() string { return e.Data.String("id") }

// Source returns data.source of an edge element.
func (e Element) Source() string { return e.Data.String("source") }

// Target returns data.target of an edge element.
func (e Element) Target() string { return e.Data.String("target") }

// IsNode reports whether e belongs to the "nodes" group.
func (e Element) IsNode() bool { return e.Group == GroupNodes }

// IsEdge reports whether e belongs to the "edges" group.
func (e Element) IsEdge() bool { return e.Group == GroupEdges }

// Map returns e in its plain JSON shape. Data is deep-copied.
func (e Element) Map() attrs.Attrs {
	data := e.Data.DeepClone()
	if data == nil {
		data = attrs.Attrs{}
	}
	m := attrs.Attrs{
		"group": string(e.Group),
		"data":  map[string]any(data),
	}
	if e.Position != nil {
		m["position"] = map[string]any{"x": e.Position.X, "y": e.Position.Y}
	}
	return m
}

// elementFromMap reads a plain JSON-shaped element. The second result is
// false unless m has a recognized group.
func elementFromMap(m attrs.Attrs) (Element, bool) {
	group := Group(m.String("group"))
	if !group.Valid() {
		return Element{}, false
	}
	el := Element{Group: group}
	if data, ok := attrs.As(m["data"]); ok {
		el.Data = data
	}
	if pos, ok := attrs.As(m["position"]); ok {
		x, _ := attrs.Number(pos["x"])
		y, _ := attrs.Number(pos["y"])
		el.Position = &Position{X: x, Y: y}
	}
	return el, true
}

// Instance is a live element handle owned by a visualization runtime. Its
// accessors are methods rather than fields, so conversions call them instead
// of reading data directly.
type Instance interface {
	ID() string
	Data() attrs.Attrs
	Group() Group
}

// Positioned is implemented by live node instances that expose a position.
type Positioned interface {
	Position() Position
}
