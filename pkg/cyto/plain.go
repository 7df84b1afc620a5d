package cyto

import (
	"fmt"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// ToPlain converts one element back into an attribute bag.
//
// Nodes yield their data plus "x" and "y" from the position. Edges yield
// their data with "source" and "target" renamed to "sourceId" and
// "targetId". Live instances and JSON-shaped objects without a recognized
// group are read opportunistically: data, id and position are copied when
// present and endpoints renamed.
//
// An empty value (nil or an empty mapping) yields nil. Values that are not
// element-shaped fail with INVALID_INPUT; use [ToPlainAll] for sequences.
func ToPlain(v any) (attrs.Attrs, error) {
	if attrs.IsEmpty(v) {
		return nil, nil
	}
	c := Classify(v)
	switch c.Kind {
	case KindNode:
		return plainNode(c.Element, c.Raw), nil
	case KindEdge:
		return plainEdge(c.Element), nil
	case KindInstance:
		return plainInstance(c.Instance), nil
	case KindGeneric:
		return plainGeneric(c.Raw), nil
	default:
		return nil, errors.InvalidInput("expected an element, got %T", v)
	}
}

// ToPlainAll converts a sequence of elements element-wise. An empty
// sequence yields an empty, non-nil result.
func ToPlainAll[T any](vs []T) ([]attrs.Attrs, error) {
	out := make([]attrs.Attrs, 0, len(vs))
	for i, v := range vs {
		p, err := ToPlain(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// plainNode overlays the position on a copy of the node data. For a
// map-form node raw is the source mapping, and only the position fields it
// actually holds are overlaid, as given.
func plainNode(el Element, raw attrs.Attrs) attrs.Attrs {
	p := el.Data.DeepClone()
	if p == nil {
		p = attrs.Attrs{}
	}
	if raw != nil {
		if pos, ok := attrs.As(raw["position"]); ok {
			p.Merge(pos.DeepClone())
		}
		return p
	}
	if el.Position != nil {
		overlayCoordinate(p, "x", el.Position.X)
		overlayCoordinate(p, "y", el.Position.Y)
	}
	return p
}

// overlayCoordinate sets p[key] to v unless p already holds a non-numeric
// coordinate there, which a Position cannot carry.
func overlayCoordinate(p attrs.Attrs, key string, v float64) {
	if cur, ok := p[key]; ok && attrs.Truthy(cur) {
		if _, numeric := attrs.Number(cur); !numeric {
			return
		}
	}
	p[key] = v
}

func plainEdge(el Element) attrs.Attrs {
	p := el.Data.DeepClone()
	if p == nil {
		p = attrs.Attrs{}
	}
	renameEndpoint(p, "source", "sourceId", true)
	renameEndpoint(p, "target", "targetId", true)
	if id := el.ID(); id != "" {
		p["id"] = id
	}
	return p
}

func plainInstance(inst Instance) attrs.Attrs {
	p := inst.Data().Clone()
	if p == nil {
		p = attrs.Attrs{}
	}
	if id := inst.ID(); id != "" {
		p["id"] = id
	}
	if pos, ok := inst.(Positioned); ok && inst.Group() == GroupNodes {
		xy := pos.Position()
		p["x"] = xy.X
		p["y"] = xy.Y
	}
	renameEndpoint(p, "source", "sourceId", false)
	renameEndpoint(p, "target", "targetId", false)
	return p
}

func plainGeneric(m attrs.Attrs) attrs.Attrs {
	var p attrs.Attrs
	if data, ok := attrs.As(m["data"]); ok {
		p = data.Clone()
	} else {
		p = attrs.Attrs{}
	}
	if id, ok := m["id"]; ok && attrs.Truthy(id) {
		p["id"] = id
	}
	if pos, ok := attrs.As(m["position"]); ok {
		p.Merge(pos)
	}
	renameEndpoint(p, "source", "sourceId", false)
	renameEndpoint(p, "target", "targetId", false)
	return p
}

// renameEndpoint moves p[from] to p[to]. With always set the destination is
// written even when the source is empty (as nil); otherwise only truthy
// values are moved.
func renameEndpoint(p attrs.Attrs, from, to string, always bool) {
	v := p[from]
	if !always && !attrs.Truthy(v) {
		return
	}
	delete(p, from)
	if attrs.Truthy(v) {
		p[to] = v
	} else {
		p[to] = nil
	}
}
