// Package render groups the visual outputs derived from element lists.
//
// The [nodelink] subpackage turns elements into Graphviz DOT and renders
// SVG in-process:
//
//	dot := nodelink.ToDOT(elements, nodelink.Options{Positions: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/orbifold/cytoconv/pkg/render/nodelink
package render
