package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
)

// Options configures node-link diagram generation.
type Options struct {
	// Positions pins nodes at their element positions.
	Positions bool
	// Detailed adds data attributes to node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// labelKeys are data keys that never appear in detailed labels.
var labelKeys = map[string]bool{"id": true, "label": true, "name": true, "source": true, "target": true}

// ToDOT converts elements to Graphviz DOT. Nodes are emitted first, in
// order, followed by edges. Elements of unknown group are ignored.
func ToDOT(elements []cyto.Element, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Positions {
		buf.WriteString("  layout=neato;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, el := range elements {
		if !el.IsNode() {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", el.ID(), strings.Join(nodeAttrs(el, opts), ", "))
	}

	buf.WriteString("\n")
	for _, el := range elements {
		if !el.IsEdge() {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q", el.Source(), el.Target())
		if label := edgeLabel(el); label != "" {
			fmt.Fprintf(&buf, " [label=%q]", label)
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(el cyto.Element, opts Options) []string {
	out := []string{fmt.Sprintf("label=%q", fmtLabel(el, opts.Detailed))}
	if opts.Positions && el.Position != nil {
		out = append(out, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(el.Position.X), fmtFloat(el.Position.Y)))
	}
	return out
}

func fmtLabel(el cyto.Element, detailed bool) string {
	label := displayLabel(el)
	if !detailed {
		return label
	}

	var parts []string
	for _, k := range el.Data.Keys() {
		if labelKeys[k] {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, el.Data[k]))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func displayLabel(el cyto.Element) string {
	for _, k := range []string{"label", "name"} {
		if v, ok := el.Data[k]; ok && attrs.Truthy(v) {
			return fmt.Sprint(v)
		}
	}
	return el.ID()
}

func edgeLabel(el cyto.Element) string {
	for _, k := range []string{"label", "labels"} {
		if v, ok := el.Data[k]; ok && attrs.Truthy(v) {
			return fmt.Sprint(v)
		}
	}
	return ""
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Validate parses dot with Graphviz and reports syntax errors as
// INVALID_FORMAT.
func Validate(dot string) error {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	return g.Close()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// matching width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
