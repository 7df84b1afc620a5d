package nodelink

import (
	"strings"
	"testing"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
)

func sampleElements() []cyto.Element {
	return []cyto.Element{
		{Group: cyto.GroupEdges, Data: attrs.Attrs{"id": "e", "source": "a", "target": "b", "labels": "KNOWS,LIKES"}},
		{Group: cyto.GroupNodes, Data: attrs.Attrs{"id": "a", "name": "Alice", "age": 30}, Position: &cyto.Position{X: 10, Y: 20.5}},
		{Group: cyto.GroupNodes, Data: attrs.Attrs{"id": "b"}, Position: &cyto.Position{}},
		{Group: "other", Data: attrs.Attrs{"id": "ignored"}},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleElements(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=TB",
		`"a" [label="Alice"]`,
		`"b" [label="b"]`,
		`"a" -> "b" [label="KNOWS,LIKES"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ignored") {
		t.Error("ToDOT() emitted an element of unknown group")
	}
	if strings.Contains(dot, "pos=") {
		t.Error("ToDOT() emitted positions without Options.Positions")
	}
	if strings.Index(dot, `"b" [`) > strings.Index(dot, "->") {
		t.Error("ToDOT() should emit nodes before edges")
	}
}

func TestToDOT_Positions(t *testing.T) {
	dot := ToDOT(sampleElements(), Options{Positions: true})

	for _, want := range []string{"layout=neato", `pos="10,20.5!"`, `pos="0,0!"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		name     string
		data     attrs.Attrs
		detailed bool
		want     string
	}{
		{"ID", attrs.Attrs{"id": "n"}, false, "n"},
		{"Label", attrs.Attrs{"id": "n", "label": "L", "name": "N"}, false, "L"},
		{"Name", attrs.Attrs{"id": "n", "name": "N"}, false, "N"},
		{"EmptyLabel", attrs.Attrs{"id": "n", "label": ""}, false, "n"},
		{"Detailed", attrs.Attrs{"id": "n", "version": "1.0", "age": 3}, true, "n\nage: 3\nversion: 1.0"},
		{"DetailedNothingExtra", attrs.Attrs{"id": "n", "name": "N"}, true, "N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := cyto.Element{Group: cyto.GroupNodes, Data: tt.data}
			if got := fmtLabel(el, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(ToDOT(sampleElements(), Options{Positions: true})); err != nil {
		t.Errorf("Validate(generated) = %v", err)
	}
	if err := Validate("digraph G { a -> "); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Validate(broken) = %v, want INVALID_FORMAT", err)
	}
}
