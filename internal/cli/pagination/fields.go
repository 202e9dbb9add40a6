package pagination

import (
	"sort"

	"github.com/rshade/tablectl/internal/datatable"
)

// FieldCatalog lists the sortable field paths present in a set of records.
// Nested objects contribute dotted leaf paths such as "city.zip".
type FieldCatalog struct {
	validFields map[string]int
}

// DiscoverFields walks every record and collects the leaf paths it contains,
// counting how many records define each one.
func DiscoverFields(records []map[string]any) *FieldCatalog {
	c := &FieldCatalog{validFields: map[string]int{}}
	for _, rec := range records {
		c.walk("", rec)
	}
	return c
}

func (c *FieldCatalog) walk(prefix string, m map[string]any) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + datatable.PathSeparator + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			c.walk(path, nested)
			continue
		}
		c.validFields[path]++
	}
}

// IsValidField checks if at least one record defines field.
func (c *FieldCatalog) IsValidField(field string) bool {
	return c.validFields[field] > 0
}

// Count returns how many records define field.
func (c *FieldCatalog) Count(field string) int {
	return c.validFields[field]
}

// GetValidFields returns all discovered paths in sorted order.
func (c *FieldCatalog) GetValidFields() []string {
	fields := make([]string, 0, len(c.validFields))
	for field := range c.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields) // Return in consistent order
	return fields
}

// UnknownFields returns the paths of spec that no record defines. Records
// lacking a sort value are still sorted (as missing), so callers warn
// rather than fail.
func (c *FieldCatalog) UnknownFields(spec datatable.SortSpec) []string {
	var unknown []string
	for _, field := range spec.By {
		if !c.IsValidField(field) {
			unknown = append(unknown, field)
		}
	}
	return unknown
}
