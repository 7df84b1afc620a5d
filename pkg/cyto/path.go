package cyto

import (
	"strings"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// propertyPath maps a property name to its location in an element.
// Dotted names are literal paths; "x" and "y" (any case) address the
// position and every other name lands in data.
func propertyPath(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	switch strings.ToLower(name) {
	case "x":
		return "position.x"
	case "y":
		return "position.y"
	default:
		return "data." + name
	}
}

// SetRawProperty writes value into the JSON-shaped element target at the
// location derived from name (see [Element.SetProperty] for the rules).
// Intermediate mappings are created as needed and a nil target is
// allocated. The target is returned.
func SetRawProperty(target attrs.Attrs, name string, value any) attrs.Attrs {
	return attrs.EnsurePath(target, propertyPath(name), value)
}

// SetProperty writes value into e at the location derived from name.
//
// A name containing a dot is a literal path such as "position.x" or
// "data.meta.owner". Otherwise "x" and "y" address the position and any
// other name is stored under data. Position values must be numeric.
func (e *Element) SetProperty(name string, value any) error {
	head, rest, _ := strings.Cut(propertyPath(name), ".")
	switch head {
	case "position":
		n, ok := attrs.Number(value)
		if !ok {
			return errors.InvalidInput("position %s must be numeric, got %T", rest, value)
		}
		if e.Position == nil {
			e.Position = &Position{}
		}
		switch strings.ToLower(rest) {
		case "x":
			e.Position.X = n
		case "y":
			e.Position.Y = n
		default:
			return errors.InvalidInput("unsupported position field %q", rest)
		}
	case "data":
		if rest == "" {
			return errors.InvalidInput("empty data path in %q", name)
		}
		e.Data = attrs.EnsurePath(e.Data, rest, value)
	default:
		return errors.InvalidInput("unsupported element property %q", name)
	}
	return nil
}
