// Package attrs implements the attribute bags carried by graph nodes and
// edges: string-keyed maps of arbitrary JSON-compatible values.
//
// Besides the [Attrs] type the package holds the small predicates the
// converters rely on to decide whether an optional field was supplied:
// [IsEmpty] (nil, "", empty sequences and empty mappings are all empty) and
// [Truthy] (loose truthiness, where 0, "" and false are false).
package attrs

import (
	"math"
	"reflect"
	"sort"
	"strings"
)

// Attrs is an attribute bag.
type Attrs map[string]any

// As reports whether v is a plain attribute mapping and returns it.
// Both Attrs and map[string]any qualify; the result shares storage with v.
func As(v any) (Attrs, bool) {
	switch m := v.(type) {
	case Attrs:
		return m, m != nil
	case map[string]any:
		return Attrs(m), m != nil
	default:
		return nil, false
	}
}

// Clone returns a shallow copy of a. Nested values are shared.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// DeepClone returns a copy of a in which nested mappings and sequences are
// copied recursively.
func (a Attrs) DeepClone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = deepCopy(v)
	}
	return out
}

// Merge copies every entry of src into a, overwriting existing keys.
func (a Attrs) Merge(src Attrs) {
	for k, v := range src {
		a[k] = v
	}
}

// Has reports whether key is present, regardless of its value.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns a[key] when it is a string, or "".
func (a Attrs) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Keys returns the keys of a in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case Attrs:
		return t.DeepClone()
	case map[string]any:
		return map[string]any(Attrs(t).DeepClone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// EnsurePath writes value at the dotted path inside target, creating
// intermediate mappings as needed. Intermediate values that are not mappings
// are replaced. A nil target is allocated; the (possibly new) target is
// returned.
func EnsurePath(target Attrs, path string, value any) Attrs {
	if target == nil {
		target = Attrs{}
	}
	parts := strings.Split(path, ".")
	cur := target
	for _, p := range parts[:len(parts)-1] {
		next, ok := As(cur[p])
		if !ok {
			next = Attrs{}
			cur[p] = map[string]any(next)
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
	return target
}

// GetPath reads the value at a dotted path. The second result is false when
// any segment is missing or an intermediate value is not a mapping.
func GetPath(source Attrs, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := source
	for _, p := range parts[:len(parts)-1] {
		next, ok := As(cur[p])
		if !ok {
			return nil, false
		}
		cur = next
	}
	v, ok := cur[parts[len(parts)-1]]
	return v, ok
}

// IsEmpty reports whether v counts as "not supplied": nil, the empty string,
// an empty sequence or an empty mapping. Typed nil pointers, slices and maps
// are empty too.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case Attrs:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Truthy applies loose truthiness: nil, false, zero numbers, NaN and the
// empty string are false; everything else, including empty collections, is
// true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
