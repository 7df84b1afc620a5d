// Package nodelink renders element lists as node-link diagrams.
//
// # Overview
//
// Nodes become boxes and edges become arrows. The output is Graphviz DOT,
// which can be rendered in-process with [RenderSVG] or handed to external
// Graphviz tools.
//
// # Usage
//
//	dot := nodelink.ToDOT(elements, nodelink.Options{Positions: true})
//	if err := nodelink.Validate(dot); err != nil {
//	    return err
//	}
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Positions: pin every node at its element position (pos="x,y!") and
//     switch the layout engine to neato so the coordinates are honored
//   - Detailed: include the remaining data attributes in node labels
//
// Node labels use data.label, then data.name, then the id. Edge labels use
// data.label or the comma-joined data.labels.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for parsing and SVG
// rendering.
package nodelink
