package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/orbifold/cytoconv/internal/server"
	"github.com/orbifold/cytoconv/pkg/metrics"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen    string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions and stored graphs over HTTP",
		Long: `Serve the conversion API.

Routes are listed in the server package documentation; /metrics exposes
Prometheus metrics unless --no-metrics is given.`,
		Example: `  cytoconv serve
  cytoconv serve --listen 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Server.Listen
			}

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer closeQuietly(runner, c.Logger, "cache")

			st, err := c.openStore(ctx, false)
			if err != nil {
				return err
			}
			defer closeQuietly(st, c.Logger, "store")

			opts := server.Options{
				Runner:          runner,
				Store:           st,
				Logger:          c.Logger,
				MaxBodyBytes:    cfg.Server.MaxBodyBytes,
				ReadTimeout:     cfg.Server.ReadTimeout.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				m := metrics.New(reg)
				m.Register()
				opts.Metrics = m.Handler()
			}

			c.Logger.Info("starting server",
				"listen", listen,
				"cache", cfg.Cache.Backend,
				"store", cfg.Store.Backend)
			return server.New(opts).ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	return cmd
}
