package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbifold/cytoconv/pkg/errors"
	"github.com/orbifold/cytoconv/pkg/graph"
)

// storeCommand creates the graph store command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save, fetch, list and delete graphs by id",
		Long: `Manage stored graphs.

Graphs are kept in the configured store: JSON files under
~/.config/cytoconv/graphs by default, or MongoDB when store.backend is "mongo".`,
	}

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	return cmd
}

func (c *CLI) storePutCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "put <graph-file>",
		Short: "Store a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			if id != "" {
				g.ID = id
			}
			if g.ID == "" {
				return errors.InvalidInput("%s has no graph id; pass --id", args[0])
			}

			st, err := c.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeQuietly(st, c.Logger, "store")

			if err := st.Save(cmd.Context(), g); err != nil {
				return err
			}
			printSuccess("Stored graph %s", StyleHighlight.Render(g.ID))
			printStats(g.NodeCount(), g.EdgeCount(), false)
			printNextStep("Fetch it", "cytoconv store get "+g.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "store under this id instead of the file's graph id")
	return cmd
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeQuietly(st, c.Logger, "store")

			g, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if outputFile(output) {
				if err := graph.WriteGraphFile(g, output); err != nil {
					return err
				}
				printFile(output)
				return nil
			}
			f, err := graph.ParseFormat(format)
			if err != nil {
				return err
			}
			return graph.WriteGraph(g, c.Out, f)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "stdout format: json or yaml")
	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeQuietly(st, c.Logger, "store")

			list, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No stored graphs")
				return nil
			}
			for _, s := range list {
				fmt.Fprintf(c.Out, "%s  %s\n",
					StyleValue.Render(s.ID),
					StyleDim.Render(fmt.Sprintf("%d nodes · %d edges · %s", s.Nodes, s.Edges, s.UpdatedAt.Format(time.DateTime))))
			}
			return nil
		},
	}
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored graph",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeQuietly(st, c.Logger, "store")

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted graph %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}
