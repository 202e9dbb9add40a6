package datatable

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"
)

// SortOrder is the direction applied to every path of a SortSpec.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Normalize maps the empty order to SortAsc. Any other unknown value is also
// treated as ascending.
func (o SortOrder) Normalize() SortOrder {
	if o == SortDesc {
		return SortDesc
	}
	return SortAsc
}

// Reverse returns the opposite direction.
func (o SortOrder) Reverse() SortOrder {
	if o.Normalize() == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// SortSpec is an ordered list of field paths compared lexicographically,
// all in the same direction.
type SortSpec struct {
	By    []string  `json:"sortBy"    yaml:"sort_by"`
	Order SortOrder `json:"sortOrder" yaml:"sort_order"`
}

// SortBy builds a SortSpec from one or more paths.
func SortBy(order SortOrder, paths ...string) SortSpec {
	return SortSpec{By: paths, Order: order}
}

// Normalize returns a copy with a defined order and without blank paths.
func (s SortSpec) Normalize() SortSpec {
	by := make([]string, 0, len(s.By))
	for _, p := range s.By {
		if len(SplitPath(p)) > 0 {
			by = append(by, p)
		}
	}
	return SortSpec{By: by, Order: s.Order.Normalize()}
}

// IsZero reports whether the spec sorts nothing.
func (s SortSpec) IsZero() bool {
	return len(s.Normalize().By) == 0
}

// Equal compares two specs after normalization.
func (s SortSpec) Equal(other SortSpec) bool {
	a, b := s.Normalize(), other.Normalize()
	return a.Order == b.Order && slices.Equal(a.By, b.By)
}

// MissingPolicy places records whose sort value is missing (unresolvable path
// or nil). The placement does not depend on the sort direction.
type MissingPolicy int

const (
	// MissingLast sorts missing values after every defined value.
	MissingLast MissingPolicy = iota
	// MissingFirst sorts missing values before every defined value.
	MissingFirst
)

// String implements fmt.Stringer.
func (p MissingPolicy) String() string {
	if p == MissingFirst {
		return "first"
	}
	return "last"
}

// ParseMissingPolicy parses "first" or "last".
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "", "last":
		return MissingLast, nil
	case "first":
		return MissingFirst, nil
	default:
		return MissingLast, fmt.Errorf("unknown missing-value policy %q (want first or last)", s)
	}
}

// Comparator holds the value-ordering policy used when sorting records.
type Comparator struct {
	Collation Collation
	Missing   MissingPolicy
}

// valueClass ranks values of different kinds against each other.
type valueClass int

const (
	classMissing valueClass = iota
	classBool
	classNumber
	classTime
	classString
)

type sortKey struct {
	class valueClass
	b     bool
	i     int64
	f     float64
	exact bool
	t     time.Time
	str   []byte
}

// SortRecords returns a stably sorted copy of records. The input slice is not
// modified. An empty spec returns the copy in input order.
func SortRecords[T any](c Comparator, records []T, spec SortSpec) []T {
	out := make([]T, len(records))
	copy(out, records)

	spec = spec.Normalize()
	if len(spec.By) == 0 || len(records) < 2 {
		return out
	}

	paths := make([][]string, len(spec.By))
	for i, p := range spec.By {
		paths[i] = SplitPath(p)
	}

	type decorated struct {
		index int
		keys  []sortKey
	}
	rows := make([]decorated, len(records))
	for i, rec := range records {
		keys := make([]sortKey, len(paths))
		for j, segs := range paths {
			v, ok := resolveSegments(rec, segs)
			keys[j] = c.key(v, ok)
		}
		rows[i] = decorated{index: i, keys: keys}
	}

	slices.SortStableFunc(rows, func(a, b decorated) int {
		for j := range paths {
			if r := c.compare(a.keys[j], b.keys[j], spec.Order); r != 0 {
				return r
			}
		}
		return 0
	})

	for i, row := range rows {
		out[i] = records[row.index]
	}
	return out
}

// compare orders two keys for the given direction. Missing keys are placed by
// the policy before the direction is applied.
func (c Comparator) compare(a, b sortKey, order SortOrder) int {
	aMissing, bMissing := a.class == classMissing, b.class == classMissing
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing || bMissing:
		r := 1
		if aMissing == (c.Missing == MissingFirst) {
			r = -1
		}
		return r
	}

	r := compareKeys(a, b)
	if order == SortDesc {
		return -r
	}
	return r
}

func compareKeys(a, b sortKey) int {
	if a.class != b.class {
		return cmp.Compare(a.class, b.class)
	}
	switch a.class {
	case classBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case classNumber:
		if a.exact && b.exact {
			return cmp.Compare(a.i, b.i)
		}
		return cmp.Compare(a.f, b.f)
	case classTime:
		return a.t.Compare(b.t)
	case classString:
		return bytes.Compare(a.str, b.str)
	default:
		return 0
	}
}

func (c Comparator) collation() Collation {
	if c.Collation == nil {
		return CaseInsensitiveCollation
	}
	return c.Collation
}

//nolint:exhaustive // Remaining kinds are rendered with fmt and collated as strings.
func (c Comparator) key(v any, ok bool) sortKey {
	if !ok || v == nil {
		return sortKey{class: classMissing}
	}

	switch tv := v.(type) {
	case time.Time:
		return sortKey{class: classTime, t: tv}
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return sortKey{class: classNumber, i: i, f: float64(i), exact: true}
		}
		if f, err := tv.Float64(); err == nil {
			return sortKey{class: classNumber, f: f}
		}
		return sortKey{class: classString, str: c.collation().Key(tv.String())}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return sortKey{class: classBool, b: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return sortKey{class: classNumber, i: i, f: float64(i), exact: true}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return sortKey{class: classNumber, i: int64(u), f: float64(u), exact: true}
		}
		return sortKey{class: classNumber, f: float64(u)}
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return sortKey{class: classMissing}
		}
		return sortKey{class: classNumber, f: f}
	case reflect.String:
		return sortKey{class: classString, str: c.collation().Key(rv.String())}
	default:
		return sortKey{class: classString, str: c.collation().Key(fmt.Sprint(v))}
	}
}
