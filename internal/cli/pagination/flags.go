package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/tablectl/internal/datatable"
)

// Pagination defaults and limits.
const (
	DefaultPage     = datatable.FirstPage
	MinPage         = datatable.FirstPage
	DefaultPageSize = 20
	// ShowAllPageSize puts every record on one page.
	ShowAllPageSize = datatable.ShowAll
	MaxPageSize     = 100000
	SortOrderAsc    = string(datatable.SortAsc)
	SortOrderDesc   = string(datatable.SortDesc)
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = errors.New("page-size must be between 0 and 100000 (0 shows all rows)")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New(
		"invalid sort format: use 'field', 'field:order' or 'a,b:order' (e.g., 'city.zip,name:desc')",
	)
	ErrEmptySortField = errors.New("sort field cannot be empty")
)

// sortSeparator splits the field list from the order in a sort expression.
const sortSeparator = ":"

// PaginationParams holds the CLI paging flags and provides validation.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page; 0 shows all rows.
	PageSize int

	// Sort is the raw --sort expression, e.g. "city.zip,name:desc".
	Sort string
}

// NewPaginationParams creates PaginationParams for the first page of pageSize rows.
func NewPaginationParams(pageSize int) *PaginationParams {
	return &PaginationParams{
		Page:     DefaultPage,
		PageSize: pageSize,
	}
}

// Validate checks if the parameters are valid (value receiver).
func (p PaginationParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < ShowAllPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// PageSpec returns the page selection for a datatable.Controller.
func (p PaginationParams) PageSpec() datatable.PageSpec {
	return datatable.PageSpec{ActivePage: p.Page, RowsOnPage: p.PageSize}
}

// SortSpec parses Sort, using defaultOrder when the expression names no
// order. Call Validate first; an invalid expression yields the zero spec.
func (p PaginationParams) SortSpec(defaultOrder datatable.SortOrder) datatable.SortSpec {
	spec, err := ParseSort(p.Sort)
	if err != nil {
		return datatable.SortSpec{}
	}
	if spec.Order == "" {
		spec.Order = defaultOrder
	}
	return spec
}

// ParseSort parses a sort expression: a comma-separated list of field paths,
// optionally followed by ":asc" or ":desc" which applies to every path.
// Examples: "name", "age:desc", "city.zip,name:asc".
// An empty expression yields the zero spec (no sort). When no order is given
// the returned Order is empty, which the controller treats as ascending.
func ParseSort(sortStr string) (datatable.SortSpec, error) {
	if strings.TrimSpace(sortStr) == "" {
		return datatable.SortSpec{}, nil
	}

	fields := sortStr
	var order datatable.SortOrder
	if i := strings.LastIndex(sortStr, sortSeparator); i >= 0 {
		fields = sortStr[:i]
		o := strings.ToLower(strings.TrimSpace(sortStr[i+1:]))
		if o != SortOrderAsc && o != SortOrderDesc {
			if strings.Contains(fields, sortSeparator) {
				return datatable.SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
			}
			return datatable.SortSpec{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, o)
		}
		if strings.Contains(fields, sortSeparator) {
			return datatable.SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
		}
		order = datatable.SortOrder(o)
	}

	parts := strings.Split(fields, ",")
	by := make([]string, 0, len(parts))
	for _, part := range parts {
		field := strings.TrimSpace(part)
		if len(datatable.SplitPath(field)) == 0 {
			return datatable.SortSpec{}, ErrEmptySortField
		}
		by = append(by, field)
	}

	return datatable.SortSpec{By: by, Order: order}, nil
}

// FormatSort renders a spec back into the --sort syntax.
func FormatSort(spec datatable.SortSpec) string {
	if len(spec.By) == 0 {
		return ""
	}
	return strings.Join(spec.By, ",") + sortSeparator + string(spec.Order.Normalize())
}
