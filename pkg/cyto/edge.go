package cyto

import (
	"fmt"
	"strings"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// alias is one input key that may name an edge endpoint.
type alias struct {
	key  string
	rank int // higher wins
}

var (
	sourceAliases = []alias{{"source", 0}, {"sourceId", 1}, {"from", 2}}
	targetAliases = []alias{{"target", 0}, {"targetId", 1}, {"to", 2}}
)

// Endpoint is a resolved edge endpoint and the alias it was read from.
type Endpoint struct {
	Value string
	Alias string
}

// resolveEndpoint picks the highest ranked alias carrying a truthy value.
func resolveEndpoint(bag attrs.Attrs, aliases []alias) (Endpoint, error) {
	var (
		best Endpoint
		rank = -1
	)
	for _, a := range aliases {
		raw, ok := bag[a.key]
		if !ok || !attrs.Truthy(raw) || a.rank < rank {
			continue
		}
		v, ok := identifierString(raw)
		if !ok {
			return Endpoint{}, errors.InvalidInput("edge %s must be a string or number, got %T", a.key, raw)
		}
		best, rank = Endpoint{Value: v, Alias: a.key}, a.rank
	}
	return best, nil
}

func aliasKeys(aliases []alias) []string {
	keys := make([]string, len(aliases))
	for i, a := range aliases {
		keys[i] = a.key
	}
	return keys
}

// ToCyEdge converts an attribute bag into an edge element.
//
// The source endpoint is read from "source", "sourceId" or "from" and the
// target from "target", "targetId" or "to"; when several aliases are present
// the later one in that order wins. Alias keys never reach data. An edge
// without a source or target fails with a *errors.MissingEndpointError.
// A "labels" sequence is stored as a single comma-joined string.
func (c *Converter) ToCyEdge(v any) (Element, error) {
	in, ok := attrs.As(v)
	if !ok {
		return Element{}, errors.InvalidInput("expected a plain object, got %T", v)
	}

	el := Element{
		Group: GroupEdges,
		Data:  attrs.Attrs{"id": c.newID()},
	}

	d := in.Clone()
	if raw, ok := d["id"]; ok && attrs.Truthy(raw) {
		el.Data["id"] = normalizeID(raw)
	}
	delete(d, "id")

	sides := []struct {
		name    string
		aliases []alias
	}{
		{"source", sourceAliases},
		{"target", targetAliases},
	}
	for _, side := range sides {
		ep, err := resolveEndpoint(d, side.aliases)
		if err != nil {
			return Element{}, err
		}
		if ep.Value == "" {
			return Element{}, &errors.MissingEndpointError{Endpoint: side.name, Aliases: aliasKeys(side.aliases)}
		}
		for _, a := range side.aliases {
			delete(d, a.key)
		}
		el.Data[side.name] = ep.Value
	}

	if !attrs.IsEmpty(d) {
		el.Data.Merge(d)
	}
	if labels, ok := joinLabels(el.Data["labels"]); ok {
		el.Data["labels"] = labels
	}
	return el, nil
}

// joinLabels renders a sequence as one comma-separated string. Nil
// entries render as empty strings.
func joinLabels(v any) (string, bool) {
	if ss, ok := attrs.Strings(v); ok {
		return strings.Join(ss, ","), true
	}
	items, ok := v.([]any)
	if !ok {
		return "", false
	}
	parts := make([]string, len(items))
	for i, item := range items {
		if item != nil {
			parts[i] = fmt.Sprint(item)
		}
	}
	return strings.Join(parts, ","), true
}
