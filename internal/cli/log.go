// Package cli implements the cytoconv command-line interface.
//
// This package provides commands for converting generic graphs into
// Cytoscape element lists and back, exporting element lists as DOT,
// storing graphs by id, and serving the conversions over HTTP. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - elements: Convert a graph file into a Cytoscape element list
//   - graph: Rebuild a graph from an element list
//   - dot: Export a graph or element list as Graphviz DOT or SVG
//   - inspect: Browse the elements of a file interactively
//   - store: Save, fetch, list and delete graphs by id
//   - serve: Run the HTTP API
//   - cache: Manage the conversion cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/orbifold/cytoconv/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/orbifold/cytoconv/pkg/pipeline"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one conversion and logs how many elements it covered once
// the runner returns.
type progress struct {
	logger *log.Logger
	verb   string
	start  time.Time
}

// newProgress starts timing a conversion. verb leads the final message, as
// in "Converted 3 elements".
func newProgress(l *log.Logger, verb string) *progress {
	return &progress{logger: l, verb: verb, start: time.Now()}
}

// converted logs the element total with node and edge counts, whether the
// result was served from the cache, and the elapsed time. Extra keyvals are
// appended to the log line.
func (p *progress) converted(stats pipeline.Stats, cached bool, keyvals ...any) {
	kv := []any{
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"cached", cached,
		"took", time.Since(p.start).Round(time.Millisecond),
	}
	p.logger.Info(fmt.Sprintf("%s %d elements", p.verb, stats.NodeCount+stats.EdgeCount), append(kv, keyvals...)...)
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
