package cli

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/orbifold/cytoconv/pkg/pipeline"
)

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Info("converted graph to elements", "nodes", 2)
	logger.Debug("elements from cache")

	out := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(out) {
		t.Errorf("log line %q should start with an HH:MM:SS.cc timestamp", out)
	}
	if !strings.Contains(out, "nodes=2") {
		t.Errorf("log line %q should carry keyvals", out)
	}
	if strings.Contains(out, "elements from cache") {
		t.Error("debug lines should be filtered at info level")
	}
}

func TestProgressConverted(t *testing.T) {
	tests := []struct {
		name    string
		verb    string
		stats   pipeline.Stats
		cached  bool
		keyvals []any
		want    []string
	}{
		{
			name:    "Elements",
			verb:    "Converted",
			stats:   pipeline.Stats{NodeCount: 2, EdgeCount: 1},
			keyvals: []any{"graph", "demo"},
			want:    []string{"Converted 3 elements", "nodes=2", "edges=1", "cached=false", "graph=demo", "took="},
		},
		{
			name:   "GraphFromCache",
			verb:   "Rebuilt graph from",
			stats:  pipeline.Stats{NodeCount: 4},
			cached: true,
			want:   []string{"Rebuilt graph from 4 elements", "edges=0", "cached=true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newProgress(newLogger(&buf, log.InfoLevel), tt.verb).converted(tt.stats, tt.cached, tt.keyvals...)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("progress line %q missing %q", buf.String(), w)
				}
			}
		})
	}
}

func TestElementsCommandLogsProgress(t *testing.T) {
	env := newTestEnv(t)
	input := env.write(t, "graph.json", testGraph)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = io.Discard
	root := c.RootCommand()
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", env.config, "elements", input})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("elements: %v", err)
	}

	for _, w := range []string{"Converted 3 elements", "graph=demo", "cached=false"} {
		if !strings.Contains(logs.String(), w) {
			t.Errorf("log output missing %q:\n%s", w, logs.String())
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	logger := newLogger(io.Discard, log.DebugLevel)
	ctx := withLogger(context.Background(), logger)
	if loggerFromContext(ctx) != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
}
