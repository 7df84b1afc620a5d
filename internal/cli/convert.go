package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
	"github.com/orbifold/cytoconv/pkg/graph"
	"github.com/orbifold/cytoconv/pkg/pipeline"
	"github.com/orbifold/cytoconv/pkg/render/nodelink"
)

// convertFlags are shared by the conversion commands.
type convertFlags struct {
	output  string
	format  string
	ids     string
	prefix  string
	noCache bool
	refresh bool
}

func (f *convertFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (format from extension; default stdout)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "json", "stdout format: json or yaml")
	cmd.Flags().StringVar(&f.ids, "ids", "", "id generator: uuid or sequence (default from config)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "prefix for the sequence id generator")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (f *convertFlags) options() pipeline.Options {
	return pipeline.Options{IDs: f.ids, IDPrefix: f.prefix, Refresh: f.refresh}
}

// =============================================================================
// elements
// =============================================================================

// elementsCommand creates the graph → elements command.
func (c *CLI) elementsCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "elements <graph-file>",
		Short: "Convert a graph into a Cytoscape element list",
		Long: `Convert a generic graph file ({id, nodes, edges}) into a Cytoscape element list.

Nodes come first, then edges. Edge endpoints are read from source/target,
sourceId/targetId or from/to. Missing ids are generated.`,
		Example: `  cytoconv elements graph.json
  cytoconv elements graph.yaml -o elements.json
  cytoconv elements graph.json --ids sequence --prefix n`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runElements(cmd.Context(), args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runElements(ctx context.Context, input string, flags convertFlags) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer closeQuietly(runner, c.Logger, "cache")

	prog := newProgress(c.Logger, "Converted")
	res, err := runner.Elements(ctx, g, flags.options())
	if err != nil {
		return err
	}
	prog.converted(res.Stats, res.CacheHit, "graph", g.ID)

	if outputFile(flags.output) {
		if err := graph.WriteElementsFile(res.Elements, flags.output); err != nil {
			return err
		}
		printSuccess("Wrote %d elements", len(res.Elements))
		printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheHit)
		printFile(flags.output)
		return nil
	}

	format, err := graph.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	return graph.WriteElements(res.Elements, c.Out, format)
}

// =============================================================================
// graph
// =============================================================================

// graphCommand creates the elements → graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags convertFlags
		id    string
	)

	cmd := &cobra.Command{
		Use:   "graph <elements-file>",
		Short: "Rebuild a graph from a Cytoscape element list",
		Long: `Rebuild a generic graph from a Cytoscape element list.

The element list does not carry the graph id, so the result gets a fresh id
unless --id is given.`,
		Example: `  cytoconv graph elements.json
  cytoconv graph elements.json --id my-graph -o graph.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], id, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "graph id to restore")
	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input, id string, flags convertFlags) error {
	els, err := graph.ReadElementsFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer closeQuietly(runner, c.Logger, "cache")

	opts := flags.options()
	opts.GraphID = id

	prog := newProgress(c.Logger, "Rebuilt graph from")
	res, err := runner.Graph(ctx, els, opts)
	if err != nil {
		return err
	}
	prog.converted(res.Stats, res.CacheHit, "graph", res.Graph.ID)

	if outputFile(flags.output) {
		if err := graph.WriteGraphFile(res.Graph, flags.output); err != nil {
			return err
		}
		printSuccess("Wrote graph %s", StyleHighlight.Render(res.Graph.ID))
		printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheHit)
		printFile(flags.output)
		return nil
	}

	format, err := graph.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	return graph.WriteGraph(res.Graph, c.Out, format)
}

// =============================================================================
// dot
// =============================================================================

// dotCommand creates the DOT/SVG export command.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		svg      bool
		detailed bool
		noPos    bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "dot <file>",
		Short: "Export a graph or element list as Graphviz DOT",
		Long: `Export a graph or element list as Graphviz DOT, or as SVG with --svg.

The input may be a graph file or an element list. Node positions are pinned
unless --no-positions is given, in which case Graphviz lays the graph out.`,
		Example: `  cytoconv dot graph.json
  cytoconv dot elements.json --svg -o graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			els, err := c.loadElements(ctx, args[0], noCache)
			if err != nil {
				return err
			}

			dot := nodelink.ToDOT(els, nodelink.Options{Positions: !noPos, Detailed: detailed})
			if err := nodelink.Validate(dot); err != nil {
				return err
			}

			data := []byte(dot)
			if svg || strings.EqualFold(filepath.Ext(output), ".svg") {
				data, err = renderSVG(ctx, els, dot)
				if err != nil {
					return err
				}
			}

			if !outputFile(output) {
				_, err := c.Out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Exported %d elements", len(els))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include data attributes in node labels")
	cmd.Flags().BoolVar(&noPos, "no-positions", false, "let Graphviz place nodes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the conversion cache")
	return cmd
}

// loadElements reads path as an element list, falling back to a graph file
// converted through the runner.
// renderSVG lays out and renders dot behind a spinner that shows the node
// and edge counts being drawn.
func renderSVG(ctx context.Context, els []cyto.Element, dot string) ([]byte, error) {
	nodes, edges := countKinds(els)
	sp := startSpinner(ctx, "Laying out %d nodes and %d edges", nodes, edges)
	defer sp.stop()

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		if sp.interrupted() {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return svg, nil
}

// countKinds tallies the nodes and edges in els. Elements that are neither
// are not counted.
func countKinds(els []cyto.Element) (nodes, edges int) {
	for _, el := range els {
		switch {
		case el.IsNode():
			nodes++
		case el.IsEdge():
			edges++
		}
	}
	return nodes, edges
}

func (c *CLI) loadElements(ctx context.Context, path string, noCache bool) ([]cyto.Element, error) {
	els, err := graph.ReadElementsFile(path)
	if err == nil {
		return els, nil
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		return nil, err
	}
	c.Logger.Debug("not an element list, reading as graph", "path", path)

	g, gerr := graph.ReadGraphFile(path)
	if gerr != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, gerr, "%s is neither an element list nor a graph", path)
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(runner, c.Logger, "cache")

	res, err := runner.Elements(ctx, g, pipeline.Options{})
	if err != nil {
		return nil, err
	}
	return res.Elements, nil
}
