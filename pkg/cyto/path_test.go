package cyto

import (
	"reflect"
	"testing"

	"github.com/orbifold/cytoconv/pkg/attrs"
	"github.com/orbifold/cytoconv/pkg/errors"
)

func TestSetRawProperty(t *testing.T) {
	tests := []struct {
		name  string
		prop  string
		value any
		want  attrs.Attrs
	}{
		{"X", "x", 5, attrs.Attrs{"position": map[string]any{"x": 5}}},
		{"UpperY", "Y", 6, attrs.Attrs{"position": map[string]any{"y": 6}}},
		{"Data", "label", "A", attrs.Attrs{"data": map[string]any{"label": "A"}}},
		{"DottedPath", "position.x", 1, attrs.Attrs{"position": map[string]any{"x": 1}}},
		{"DeepPath", "data.meta.owner", "me", attrs.Attrs{"data": map[string]any{"meta": map[string]any{"owner": "me"}}}},
		{"LiteralRoot", "style.color", "red", attrs.Attrs{"style": map[string]any{"color": "red"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SetRawProperty(nil, tt.prop, tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SetRawProperty(%q) = %v, want %v", tt.prop, got, tt.want)
			}
		})
	}
}

func TestSetRawPropertyMutatesTarget(t *testing.T) {
	target := attrs.Attrs{"data": map[string]any{"id": "a"}}
	got := SetRawProperty(target, "name", "n")

	data := target["data"].(map[string]any)
	if data["name"] != "n" || data["id"] != "a" {
		t.Errorf("target data = %v, want id and name", data)
	}
	if reflect.ValueOf(got).Pointer() != reflect.ValueOf(target).Pointer() {
		t.Error("SetRawProperty should return the target it was given")
	}
}

func TestElementSetProperty(t *testing.T) {
	el := Element{Group: GroupNodes, Data: attrs.Attrs{"id": "a"}}

	steps := []struct {
		name  string
		value any
	}{
		{"x", 3},
		{"Y", 4.5},
		{"label", "A"},
		{"data.meta.owner", "me"},
	}
	for _, s := range steps {
		if err := el.SetProperty(s.name, s.value); err != nil {
			t.Fatalf("SetProperty(%q): %v", s.name, err)
		}
	}

	if *el.Position != (Position{X: 3, Y: 4.5}) {
		t.Errorf("position = %+v, want {3 4.5}", *el.Position)
	}
	want := attrs.Attrs{"id": "a", "label": "A", "meta": map[string]any{"owner": "me"}}
	if !reflect.DeepEqual(el.Data, want) {
		t.Errorf("data = %v, want %v", el.Data, want)
	}
}

func TestElementSetPropertyErrors(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"x", "left"},
		{"position.z", 1},
		{"style.color", "red"},
		{"data.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var el Element
			if err := el.SetProperty(tt.name, tt.value); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("SetProperty(%q) error = %v, want INVALID_INPUT", tt.name, err)
			}
		})
	}
}
