package cyto

import (
	"reflect"
	"strings"
	"testing"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/errors"
	"github.com/orbifold/cytoconv/pkg/identifier"
)

func TestToCyNode(t *testing.T) {
	tests := []struct {
		name string
		in   attrs.Attrs
		want Element
	}{
		{
			name: "IDOnly",
			in:   attrs.Attrs{"id": "a"},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "a"}, Position: &Position{}},
		},
		{
			name: "XMovesToPosition",
			in:   attrs.Attrs{"id": "a", "x": 5},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "a"}, Position: &Position{X: 5}},
		},
		{
			name: "BothCoordinates",
			in:   attrs.Attrs{"id": "a", "x": 5, "y": -1},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "a"}, Position: &Position{X: 5, Y: -1}},
		},
		{
			name: "ExtrasGoToData",
			in:   attrs.Attrs{"id": "a", "z": "J"},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "a", "z": "J"}, Position: &Position{}},
		},
		{
			name: "GeneratedID",
			in:   attrs.Attrs{"label": "first"},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "n1", "label": "first"}, Position: &Position{}},
		},
		{
			name: "EmptyIDIsReplaced",
			in:   attrs.Attrs{"id": ""},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "n1"}, Position: &Position{}},
		},
		{
			name: "NumericID",
			in:   attrs.Attrs{"id": 7.0},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "7"}, Position: &Position{}},
		},
		{
			name: "NumericStringCoordinate",
			in:   attrs.Attrs{"id": "a", "y": "2.5"},
			want: Element{Group: GroupNodes, Data: attrs.Attrs{"id": "a"}, Position: &Position{Y: 2.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter(identifier.NewSequence("n"))
			got, err := c.ToCyNode(tt.in)
			if err != nil {
				t.Fatalf("ToCyNode: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToCyNode(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// A zero coordinate is falsy, so it is not moved into the position and stays
// among the extra attributes.
func TestToCyNodeZeroCoordinateStaysInData(t *testing.T) {
	got, err := ToCyNode(attrs.Attrs{"id": "a", "x": 0, "y": 3})
	if err != nil {
		t.Fatalf("ToCyNode: %v", err)
	}
	if got.Position == nil || got.Position.X != 0 || got.Position.Y != 3 {
		t.Errorf("position = %+v, want {0 3}", got.Position)
	}
	if v, ok := got.Data["x"]; !ok || v != 0 {
		t.Errorf("data.x = %v (present %v), want 0 kept in data", v, ok)
	}
	if _, ok := got.Data["y"]; ok {
		t.Error("data.y should have moved to the position")
	}
}

func TestToCyNodeDefaults(t *testing.T) {
	restore := identifier.SetDefault(identifier.UUID{})
	defer restore()

	a, err := ToCyNode(map[string]any{"color": "red"})
	if err != nil {
		t.Fatalf("ToCyNode: %v", err)
	}
	b, err := ToCyNode(map[string]any{"color": "red"})
	if err != nil {
		t.Fatalf("ToCyNode: %v", err)
	}

	if *a.Position != (Position{}) {
		t.Errorf("position = %+v, want {0 0}", *a.Position)
	}
	if a.ID() == "" {
		t.Error("generated id is empty")
	}
	if a.ID() == b.ID() {
		t.Errorf("generated ids collide: %q", a.ID())
	}
}

func TestToCyNodeDoesNotMutateInput(t *testing.T) {
	in := attrs.Attrs{"id": "a", "x": 1, "y": 2, "k": "v"}
	if _, err := ToCyNode(in); err != nil {
		t.Fatalf("ToCyNode: %v", err)
	}
	want := attrs.Attrs{"id": "a", "x": 1, "y": 2, "k": "v"}
	if !reflect.DeepEqual(in, want) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestToCyNodeInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"Number", 42},
		{"String", "node"},
		{"Nil", nil},
		{"Slice", []any{map[string]any{"id": "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToCyNode(tt.in)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ToCyNode(%v) error = %v, want INVALID_INPUT", tt.in, err)
			}
		})
	}
}

func TestToCyNodes(t *testing.T) {
	got, err := ToCyNodes([]attrs.Attrs{{"id": "a"}})
	if err != nil {
		t.Fatalf("ToCyNodes: %v", err)
	}
	want := []Element{{Group: GroupNodes, Data: attrs.Attrs{"id": "a"}, Position: &Position{}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToCyNodes = %+v, want %+v", got, want)
	}
}

func TestToCyNodesStopsAtFirstFailure(t *testing.T) {
	_, err := ToCyNodes([]any{map[string]any{"id": "a"}, 42, "never reached"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
	if want := "node 1: "; !strings.HasPrefix(err.Error(), want) {
		t.Errorf("error = %q, want prefix %q", err.Error(), want)
	}
}

func TestToCyNodeNonNumericCoordinate(t *testing.T) {
	in := attrs.Attrs{"id": "a", "x": "left", "y": 7}
	got, err := ToCyNode(in)
	if err != nil {
		t.Fatalf("ToCyNode: %v", err)
	}
	if got.Position.X != 0 || got.Position.Y != 7 {
		t.Errorf("position = %+v, want (0, 7)", *got.Position)
	}
	if got.Data["x"] != "left" {
		t.Errorf("data.x = %v, want the coordinate kept in data", got.Data["x"])
	}

	back, err := ToPlain(got)
	if err != nil {
		t.Fatalf("ToPlain: %v", err)
	}
	want := attrs.Attrs{"id": "a", "x": "left", "y": 7.0}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("round trip = %v, want %v", back, want)
	}
}

func TestToCyNodeUnusualID(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want any
	}{
		{"Bool", true, true},
		{"Mapping", map[string]any{"ns": "a"}, map[string]any{"ns": "a"}},
		{"Integer", 5, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCyNode(attrs.Attrs{"id": tt.id})
			if err != nil {
				t.Fatalf("ToCyNode: %v", err)
			}
			if !reflect.DeepEqual(got.Data["id"], tt.want) {
				t.Errorf("data.id = %#v, want %#v", got.Data["id"], tt.want)
			}
		})
	}
}
