package datatable

import (
	"reflect"
	"strconv"
	"strings"
)

// PathSeparator separates segments of a nested field path ("city.zip").
const PathSeparator = "."

// SplitPath splits a dotted field path into its segments.
// Empty segments are dropped so "a..b" and ".a.b" behave like "a.b".
func SplitPath(path string) []string {
	raw := strings.Split(path, PathSeparator)
	segments := raw[:0]
	for _, seg := range raw {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// Resolve walks record along the dotted path and returns the value found there.
// The second result is false when any segment is missing or the path walks into
// a nil value. Maps keyed by string, structs (exported field name, matched
// case-insensitively, or json tag), pointers, interfaces, slices and arrays
// (numeric segment) are supported.
func Resolve(record any, path string) (any, bool) {
	return resolveSegments(record, SplitPath(path))
}

func resolveSegments(record any, segments []string) (any, bool) {
	if len(segments) == 0 {
		return nil, false
	}

	v := reflect.ValueOf(record)
	for _, seg := range segments {
		v = indirect(v)
		if !v.IsValid() {
			return nil, false
		}
		next, ok := step(v, seg)
		if !ok {
			return nil, false
		}
		v = next
	}

	v = indirect(v)
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

// indirect dereferences pointers and interfaces until it reaches a concrete
// value. A nil pointer or interface yields the zero Value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

//nolint:exhaustive // Only container kinds can be walked into.
func step(v reflect.Value, seg string) (reflect.Value, bool) {
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		val := v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
		if !val.IsValid() {
			return reflect.Value{}, false
		}
		return val, true
	case reflect.Struct:
		return structField(v, seg)
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(idx), true
	default:
		return reflect.Value{}, false
	}
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" && tag == name {
			return v.Field(i), true
		}
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.IsExported() && strings.EqualFold(f.Name, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
