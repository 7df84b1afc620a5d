package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/orbifold/cytoconv/pkg/buildinfo"
	"github.com/orbifold/cytoconv/pkg/cache"
	"github.com/orbifold/cytoconv/pkg/config"
	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/pipeline"
	"github.com/orbifold/cytoconv/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cytoconv"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command results; status lines go to the logger.
	Out io.Writer

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "cytoconv converts between generic graphs and Cytoscape elements",
		Long: `cytoconv converts generic graphs ({id, nodes, edges}) into Cytoscape.js
element lists and back, stores graphs by id, and serves the conversions over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/cytoconv/config.toml)")

	root.AddCommand(c.elementsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration once per process.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Prefix)
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.Converter = cyto.NewConverter(cfg.Generator())
	if cfg.Cache.TTL.Duration > 0 {
		r.TTL = cfg.Cache.TTL.Duration
	}
	return r, nil
}

// newCache opens the configured cache backend. It returns a nil cache when
// caching is off, which the runner treats as disabled.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return nil, nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return nil, nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// openStore opens the configured graph store. The CLI has no process to
// keep a memory store alive in, so persistent selects the file store
// instead of memory.
func (c *CLI) openStore(ctx context.Context, persistent bool) (store.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	switch cfg.Store.Backend {
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.MongoURI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
		})
	case config.StoreFile:
		return store.NewFileStore(cfg.Store.Dir)
	default:
		if persistent {
			return store.NewFileStore(cfg.Store.Dir)
		}
		return store.NewMemoryStore(), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cytoconv/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputFile resolves the -o flag: "" and "-" mean stdout.
func outputFile(path string) bool {
	return path != "" && path != "-"
}

func closeQuietly(c io.Closer, logger *log.Logger, what string) {
	if err := c.Close(); err != nil {
		logger.Warn("close failed", "resource", what, "error", err)
	}
}
