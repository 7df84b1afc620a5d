package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
)

func sampleGraph() *cyto.Graph {
	return &cyto.Graph{
		ID: "g",
		Nodes: []attrs.Attrs{
			{"id": "n1", "x": 10.0, "y": 20.0},
			{"id": "n2", "name": "second"},
		},
		Edges: []attrs.Attrs{{"id": "e1", "sourceId": "n1", "targetId": "n2"}},
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"graph.json", JSON, false},
		{"graph", JSON, false},
		{"graph.YAML", YAML, false},
		{"dir/graph.yml", YAML, false},
		{"graph.xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want INVALID_FORMAT", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": JSON, "json": JSON, "YAML": YAML, "yml": YAML} {
		if got, err := ParseFormat(name); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", name, got, err, want)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(toml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := MarshalGraph(sampleGraph(), f)
			if err != nil {
				t.Fatalf("MarshalGraph: %v", err)
			}
			got, err := UnmarshalGraph(data, f)
			if err != nil {
				t.Fatalf("UnmarshalGraph: %v", err)
			}

			if got.ID != "g" || got.NodeCount() != 2 || got.EdgeCount() != 1 {
				t.Fatalf("graph = %+v", got)
			}
			if x, _ := attrs.Number(got.Nodes[0]["x"]); x != 10 {
				t.Errorf("x = %v, want 10", got.Nodes[0]["x"])
			}
			if got.Nodes[1]["name"] != "second" {
				t.Errorf("name = %v, want second", got.Nodes[1]["name"])
			}
			if got.Edges[0]["sourceId"] != "n1" {
				t.Errorf("sourceId = %v, want n1", got.Edges[0]["sourceId"])
			}
		})
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		format    Format
		wantNodes int
		wantEdges int
		wantErr   bool
	}{
		{
			name:      "JSON",
			input:     `{"id":"g","nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`,
			format:    JSON,
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name:      "YAML",
			input:     "id: g\nnodes:\n  - id: a\n    x: 5\nedges: []\n",
			format:    YAML,
			wantNodes: 1,
		},
		{
			name:   "EmptyYAML",
			input:  "",
			format: YAML,
		},
		{
			name:    "InvalidJSON",
			input:   `{"nodes": [`,
			format:  JSON,
			wantErr: true,
		},
		{
			name:    "WrongShape",
			input:   `{"nodes": "a"}`,
			format:  JSON,
			wantErr: true,
		},
		{
			name:    "InvalidYAML",
			input:   "nodes: [a, {",
			format:  YAML,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input), tt.format)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGraph: %v", err)
			}
			if g.NodeCount() != tt.wantNodes || g.EdgeCount() != tt.wantEdges {
				t.Errorf("counts = %d/%d, want %d/%d", g.NodeCount(), g.EdgeCount(), tt.wantNodes, tt.wantEdges)
			}
		})
	}
}

func TestElementsRoundTrip(t *testing.T) {
	els := []cyto.Element{
		{Group: cyto.GroupNodes, Data: attrs.Attrs{"id": "a"}, Position: &cyto.Position{X: 1, Y: 2}},
		{Group: cyto.GroupEdges, Data: attrs.Attrs{"id": "e", "source": "a", "target": "a"}},
	}

	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteElements(els, &buf, f); err != nil {
				t.Fatalf("WriteElements: %v", err)
			}
			got, err := ReadElements(&buf, f)
			if err != nil {
				t.Fatalf("ReadElements: %v", err)
			}
			if !reflect.DeepEqual(got, els) {
				t.Errorf("round trip = %+v, want %+v", got, els)
			}
		})
	}
}

func TestMarshalElementsNil(t *testing.T) {
	data, err := MarshalElements(nil, JSON)
	if err != nil {
		t.Fatalf("MarshalElements: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("MarshalElements(nil) = %s, want []", got)
	}

	els, err := UnmarshalElements([]byte("null"), JSON)
	if err != nil || els == nil || len(els) != 0 {
		t.Errorf("UnmarshalElements(null) = %v, %v; want empty slice", els, err)
	}
}

func TestGraphFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"graph.json", "graph.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteGraphFile(sampleGraph(), path); err != nil {
				t.Fatalf("WriteGraphFile: %v", err)
			}
			got, err := ReadGraphFile(path)
			if err != nil {
				t.Fatalf("ReadGraphFile: %v", err)
			}
			if got.ID != "g" || got.NodeCount() != 2 {
				t.Errorf("graph = %+v", got)
			}
		})
	}

	t.Run("Elements", func(t *testing.T) {
		path := filepath.Join(dir, "elements.yml")
		els := []cyto.Element{{Group: cyto.GroupNodes, Data: attrs.Attrs{"id": "a"}, Position: &cyto.Position{}}}
		if err := WriteElementsFile(els, path); err != nil {
			t.Fatalf("WriteElementsFile: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "group: nodes") {
			t.Errorf("yaml output missing group:\n%s", data)
		}
		got, err := ReadElementsFile(path)
		if err != nil {
			t.Fatalf("ReadElementsFile: %v", err)
		}
		if !reflect.DeepEqual(got, els) {
			t.Errorf("ReadElementsFile = %+v, want %+v", got, els)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ReadGraphFile(filepath.Join(dir, "missing.json"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("error = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		err := WriteGraphFile(sampleGraph(), filepath.Join(dir, "graph.txt"))
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("error = %v, want INVALID_FORMAT", err)
		}
	})
}
