package cyto

import (
	"github.com/orbifold/cytoconv/pkg/attrs"
)

// Kind is the shape of a value as seen by the converters.
type Kind int

const (
	// KindInvalid is anything that is neither element-shaped nor live.
	KindInvalid Kind = iota
	// KindNode is a plain node element.
	KindNode
	// KindEdge is a plain edge element.
	KindEdge
	// KindInstance is a live element handle (see [Instance]).
	KindInstance
	// KindGeneric is a plain mapping without a recognized group.
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	case KindInstance:
		return "instance"
	case KindGeneric:
		return "generic"
	default:
		return "invalid"
	}
}

// Classified is the result of [Classify]: the detected kind plus the value
// in the form that kind is processed in.
type Classified struct {
	Kind     Kind
	Element  Element     // KindNode, KindEdge
	Instance Instance    // KindInstance
	Raw      attrs.Attrs // KindGeneric, and the source mapping of map-form nodes and edges
}

// Classify determines once how v is to be treated. Plain elements may be
// given as Element, *Element or a JSON-shaped mapping. An Element whose
// group is not recognized is generic, exactly like the same shape given as
// a mapping.
func Classify(v any) Classified {
	switch t := v.(type) {
	case Element:
		return classifyElement(t)
	case *Element:
		if t == nil {
			return Classified{}
		}
		return classifyElement(*t)
	case Instance:
		return Classified{Kind: KindInstance, Instance: t}
	}
	m, ok := attrs.As(v)
	if !ok {
		return Classified{}
	}
	if el, ok := elementFromMap(m); ok {
		c := classifyElement(el)
		c.Raw = m
		return c
	}
	return Classified{Kind: KindGeneric, Raw: m}
}

func classifyElement(el Element) Classified {
	switch el.Group {
	case GroupNodes:
		return Classified{Kind: KindNode, Element: el}
	case GroupEdges:
		return Classified{Kind: KindEdge, Element: el}
	default:
		return Classified{Kind: KindGeneric, Raw: el.Map()}
	}
}

// IsCytoElement reports whether v is a plain node or edge element.
// Live instances are not plain elements.
func IsCytoElement(v any) bool {
	k := Classify(v).Kind
	return k == KindNode || k == KindEdge
}

// IsCytoNode reports whether v is a plain node element.
func IsCytoNode(v any) bool { return Classify(v).Kind == KindNode }

// IsCytoEdge reports whether v is a plain edge element.
func IsCytoEdge(v any) bool { return Classify(v).Kind == KindEdge }

// IsCytoElementInstance reports whether v is a live element, i.e. exposes
// ID, Data and Group as callable accessors.
func IsCytoElementInstance(v any) bool {
	_, ok := v.(Instance)
	return ok
}

// IsCytoNodeInstance reports whether v is a live node.
func IsCytoNodeInstance(v any) bool {
	inst, ok := v.(Instance)
	return ok && inst.Group() == GroupNodes
}

// IsCytoEdgeInstance reports whether v is a live edge.
func IsCytoEdgeInstance(v any) bool {
	inst, ok := v.(Instance)
	return ok && inst.Group() == GroupEdges
}
