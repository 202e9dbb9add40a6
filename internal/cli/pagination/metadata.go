package pagination

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tablectl/internal/datatable"
)

// PaginationMeta contains metadata about a rendered page.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	FirstItem   int  `json:"first_item"   yaml:"first_item"`
	LastItem    int  `json:"last_item"    yaml:"last_item"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta creates pagination metadata from a controller's page
// settings. A page size of 0 means every row is on one page.
func NewPaginationMeta(ev datatable.PageEvent) PaginationMeta {
	spec := datatable.PageSpec{ActivePage: ev.ActivePage, RowsOnPage: ev.RowsOnPage}.Clamp(ev.DataLength)
	totalPages := datatable.TotalPages(ev.DataLength, spec.RowsOnPage)
	lo, hi := spec.Window(ev.DataLength)

	first := 0
	if hi > lo {
		first = lo + 1
	}

	return PaginationMeta{
		CurrentPage: spec.ActivePage,
		PageSize:    spec.RowsOnPage,
		TotalPages:  totalPages,
		TotalItems:  ev.DataLength,
		FirstItem:   first,
		LastItem:    hi,
		HasPrevious: spec.ActivePage > datatable.FirstPage,
		HasNext:     spec.ActivePage < totalPages,
	}
}

// Summary renders a one-line footer such as "Page 2 of 7 · rows 21-40 of 1,234",
// with numbers formatted for tag.
func (m PaginationMeta) Summary(tag language.Tag) string {
	p := message.NewPrinter(tag)
	if m.TotalItems == 0 {
		return p.Sprintf("Page %d of %d · no rows", m.CurrentPage, max(m.TotalPages, 1))
	}
	return p.Sprintf("Page %d of %d · rows %d-%d of %d",
		m.CurrentPage, m.TotalPages, m.FirstItem, m.LastItem, m.TotalItems)
}
