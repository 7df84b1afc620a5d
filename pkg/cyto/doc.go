// Package cyto converts between a generic graph model and the flat element
// notation consumed by Cytoscape.
//
// # Overview
//
// Two data shapes sit on either side of the conversion:
//
//   - [Graph]: an identifier plus ordered "nodes" and "edges" sequences, each
//     entry an [attrs.Attrs] bag
//   - []Element: a flat, ordered element list where every [Element] is tagged
//     with its group ("nodes" or "edges")
//
// Use [ToElements] to flatten a graph and [ToQwieryGraph] to rebuild one:
//
//	els, err := cyto.ToElements(&cyto.Graph{
//	    Nodes: []attrs.Attrs{{"id": "a", "x": 10, "y": 20}, {"id": "b"}},
//	    Edges: []attrs.Attrs{{"from": "a", "to": "b"}},
//	})
//	g, err := cyto.ToQwieryGraph(els)
//	g.ID = "restored" // the graph id is not part of the element list
//
// # Nodes
//
// A node element keeps its identifier inside data and its coordinates in a
// separate position:
//
//	{"group": "nodes", "data": {"id": "a", "label": "A"}, "position": {"x": 10, "y": 20}}
//
// [ToCyNode] moves the "id", "x" and "y" attributes into place, generates an
// id when none is given and defaults the position to (0, 0). Coordinates use
// loose truthiness: a supplied 0 counts as absent and stays in data.
//
// # Edges
//
// [ToCyEdge] resolves each endpoint from three aliases. The source is read
// from "source", then "sourceId", then "from", each later key overriding the
// earlier one; the target likewise from "target", "targetId" and "to". An
// edge without a resolvable endpoint fails with MISSING_ENDPOINT. A
// sequence-valued "labels" attribute is joined with commas.
//
// # Reverse Conversion
//
// [ToPlain] flattens an element back into an attribute bag. Node positions
// become "x" and "y"; edge endpoints become "sourceId" and "targetId". Live
// elements owned by a visualization runtime are supported through the
// [Instance] interface, whose accessors are invoked instead of reading
// fields.
//
// # Identifiers
//
// Generated identifiers come from an [identifier.Generator]. Package-level
// functions use the process-wide default; a [Converter] carries its own:
//
//	c := cyto.NewConverter(identifier.NewSequence("n"))
//	el, _ := c.ToCyNode(attrs.Attrs{"label": "first"}) // data.id == "n1"
//
// # Errors
//
// Failures carry a code from pkg/errors: INVALID_INPUT when the input has the
// wrong shape and MISSING_ENDPOINT when an edge endpoint is unresolved.
// Batch conversions stop at the first failing entry.
//
// # Concurrency
//
// All functions are safe for concurrent use as long as callers do not mutate
// the inputs concurrently. Inputs are never modified.
package cyto
