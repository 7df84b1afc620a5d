package cyto

import (
	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// ToCyNode converts an attribute bag into a node element.
//
// The "id" attribute becomes data.id (a fresh id is generated when it is
// missing or empty); numeric ids are formatted as strings and other values
// are kept as given. Truthy numeric "x" and "y" attributes move into the
// position, which otherwise defaults to (0, 0). A coordinate of 0, or one
// that is not a number, is treated as not supplied and left in data. All
// remaining attributes are copied into data unchanged. The input is not
// modified.
func (c *Converter) ToCyNode(v any) (Element, error) {
	in, ok := attrs.As(v)
	if !ok {
		return Element{}, errors.InvalidInput("expected a plain object, got %T", v)
	}

	el := Element{
		Group:    GroupNodes,
		Data:     attrs.Attrs{"id": c.newID()},
		Position: &Position{},
	}

	d := in.Clone()
	if raw, ok := d["id"]; ok && attrs.Truthy(raw) {
		el.Data["id"] = normalizeID(raw)
	}
	delete(d, "id")

	for _, key := range []string{"x", "y"} {
		raw, ok := d[key]
		if !ok || !attrs.Truthy(raw) {
			continue
		}
		n, ok := attrs.Number(raw)
		if !ok {
			continue
		}
		if key == "x" {
			el.Position.X = n
		} else {
			el.Position.Y = n
		}
		delete(d, key)
	}

	if !attrs.IsEmpty(d) {
		el.Data.Merge(d)
	}
	return el, nil
}
