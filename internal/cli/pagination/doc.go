// Package pagination provides the CLI side of paging and sorting tables.
//
// This package contains the pieces shared by the page and browse commands:
//   - PaginationParams: --page, --page-size and --sort flag values and validation
//   - ParseSort: turns "name,city.zip:desc" into a datatable.SortSpec
//   - PaginationMeta: response metadata built from a datatable.PageEvent
//   - FieldCatalog: the sortable field paths discovered in a set of records
package pagination
