// Package util provides helpers for reading values out of nested simulation state.
package util

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/OCAP2/geoplot/pkg/core"
)

// PathSeparator separates the segments of a state path.
const PathSeparator = "/"

// SplitPath splits a slash-delimited state path into its segments.
// An empty path has no segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// ResolvePath walks state along a slash-delimited path and returns the value found there.
// Segments are map keys for maps and decimal indices for slices and arrays.
func ResolvePath(state any, path string) (any, error) {
	current := state
	for i, segment := range SplitPath(path) {
		next, err := index(current, segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at segment %d (%q): %v",
				core.ErrPathNotFound, path, i, segment, err)
		}
		current = next
	}
	return current, nil
}

func index(v any, segment string) (any, error) {
	switch node := v.(type) {
	case map[string]any:
		child, ok := node[segment]
		if !ok {
			return nil, fmt.Errorf("no key %q", segment)
		}
		return child, nil
	case []any:
		i, err := sliceIndex(segment, len(node))
		if err != nil {
			return nil, err
		}
		return node[i], nil
	case nil:
		return nil, fmt.Errorf("cannot index nil")
	}

	// typed containers, e.g. [][]float64 built in Go rather than decoded from JSON
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		child := rv.MapIndex(reflect.ValueOf(segment).Convert(rv.Type().Key()))
		if !child.IsValid() {
			return nil, fmt.Errorf("no key %q", segment)
		}
		return child.Interface(), nil
	case reflect.Slice, reflect.Array:
		i, err := sliceIndex(segment, rv.Len())
		if err != nil {
			return nil, err
		}
		return rv.Index(i).Interface(), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot index nil pointer")
		}
		return index(rv.Elem().Interface(), segment)
	}
	return nil, fmt.Errorf("cannot index %T", v)
}

func sliceIndex(segment string, length int) (int, error) {
	i, err := strconv.Atoi(segment)
	if err != nil {
		return 0, fmt.Errorf("%q is not an index", segment)
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("index %d out of range [0,%d)", i, length)
	}
	return i, nil
}

// ToFloat64 converts a decoded scalar to float64. Bools map to 0 and 1.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case nil:
		return 0, false
	}

	// named numeric types, e.g. type Count int
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	case rv.Kind() == reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// IsSequence reports whether v is a slice or array. Strings are scalars.
func IsSequence(v any) bool {
	switch v.(type) {
	case nil, string:
		return false
	case []any:
		return true
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// Elements returns the elements of a sequence as a []any.
func Elements(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
