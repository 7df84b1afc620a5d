package attrs

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *int
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"empty attrs", Attrs{}, true},
		{"empty map", map[string]any{}, true},
		{"empty slice", []any{}, true},
		{"empty string slice", []string{}, true},
		{"nil map", nilMap, true},
		{"nil pointer", nilPtr, true},
		{"string", "a", false},
		{"zero", 0, false},
		{"false", false, false},
		{"map", map[string]any{"a": 1}, false},
		{"slice", []any{nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.v); got != tt.want {
				t.Errorf("IsEmpty(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", 0, false},
		{"zero float", 0.0, false},
		{"NaN", math.NaN(), false},
		{"negative", -1, true},
		{"float", 2.5, true},
		{"uint", uint8(3), true},
		{"empty string", "", false},
		{"string", "0", true},
		{"empty map", map[string]any{}, true},
		{"empty slice", []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestAs(t *testing.T) {
	if _, ok := As(42); ok {
		t.Error("As(42) ok = true")
	}
	if _, ok := As([]any{}); ok {
		t.Error("As([]any{}) ok = true")
	}
	var nilMap map[string]any
	if _, ok := As(nilMap); ok {
		t.Error("As(nil map) ok = true")
	}

	m := map[string]any{"a": 1}
	a, ok := As(m)
	if !ok {
		t.Fatal("As(map) ok = false")
	}
	a["b"] = 2
	if m["b"] != 2 {
		t.Error("As should share storage with its input")
	}
}

func TestCloneIsShallow(t *testing.T) {
	nested := map[string]any{"k": "v"}
	a := Attrs{"n": nested, "s": "x"}
	c := a.Clone()

	c["s"] = "y"
	if a["s"] != "x" {
		t.Error("Clone mutated the original's top level")
	}
	c["n"].(map[string]any)["k"] = "changed"
	if nested["k"] != "changed" {
		t.Error("Clone should share nested values")
	}
}

func TestDeepClone(t *testing.T) {
	a := Attrs{
		"n":    map[string]any{"k": "v"},
		"list": []any{map[string]any{"x": 1.0}},
		"tags": []string{"a"},
	}
	c := a.DeepClone()
	if !reflect.DeepEqual(a, c) {
		t.Fatalf("DeepClone() = %v, want %v", c, a)
	}

	c["n"].(map[string]any)["k"] = "changed"
	c["list"].([]any)[0].(map[string]any)["x"] = 2.0
	c["tags"].([]string)[0] = "b"

	if a["n"].(map[string]any)["k"] != "v" {
		t.Error("DeepClone shared a nested map")
	}
	if a["list"].([]any)[0].(map[string]any)["x"] != 1.0 {
		t.Error("DeepClone shared a map inside a slice")
	}
	if a["tags"].([]string)[0] != "a" {
		t.Error("DeepClone shared a string slice")
	}
}

func TestEnsurePath(t *testing.T) {
	got := EnsurePath(nil, "position.x", 5)
	want := Attrs{"position": map[string]any{"x": 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnsurePath(nil) = %v, want %v", got, want)
	}

	got = EnsurePath(got, "position.y", 7)
	if v, _ := GetPath(got, "position.x"); v != 5 {
		t.Errorf("position.x = %v, want 5 (existing branch must be kept)", v)
	}
	if v, _ := GetPath(got, "position.y"); v != 7 {
		t.Errorf("position.y = %v, want 7", v)
	}

	got = EnsurePath(Attrs{"data": "scalar"}, "data.a.b", true)
	if v, ok := GetPath(got, "data.a.b"); !ok || v != true {
		t.Errorf("data.a.b = %v, %v; want true, true", v, ok)
	}
}

func TestGetPathMissing(t *testing.T) {
	a := Attrs{"a": map[string]any{"b": 1}}
	for _, p := range []string{"x", "a.c", "a.b.c"} {
		if _, ok := GetPath(a, p); ok {
			t.Errorf("GetPath(%q) ok = true", p)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		v      any
		want   float64
		wantOK bool
	}{
		{10, 10, true},
		{int64(-3), -3, true},
		{uint16(4), 4, true},
		{float32(1.5), 1.5, true},
		{2.25, 2.25, true},
		{json.Number("12"), 12, true},
		{" 7.5 ", 7.5, true},
		{"abc", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := Number(tt.v)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Number(%#v) = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStrings(t *testing.T) {
	if got, ok := Strings([]any{"a", "b"}); !ok || !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Strings([]any) = %v, %v", got, ok)
	}
	if _, ok := Strings([]any{"a", 1}); ok {
		t.Error("Strings with a non-string element ok = true")
	}
	if _, ok := Strings("a,b"); ok {
		t.Error("Strings(string) ok = true")
	}
}

func TestKeysSorted(t *testing.T) {
	a := Attrs{"b": 1, "a": 2, "c": 3}
	if got := a.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", got)
	}
}
