package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orbifold/cytoconv/pkg/config"
)

// configCommand creates the configuration inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after defaults, the config file and environment
overrides (CYTOCONV_LISTEN, CYTOCONV_REDIS_ADDR, CYTOCONV_MONGO_URI) are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return cfg.Write(c.Out)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(c.Out, path)
			return nil
		},
	})
	return cmd
}
