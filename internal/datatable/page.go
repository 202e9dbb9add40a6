package datatable

// Page defaults.
const (
	// DefaultRowsOnPage is the page size of a new Controller.
	DefaultRowsOnPage = 1000
	// ShowAll is the page size meaning "every row on a single page".
	// Any page size <= 0 is treated as ShowAll.
	ShowAll = 0
	// FirstPage is the lowest valid page number.
	FirstPage = 1
)

// PageSpec selects the visible window of the sorted records.
type PageSpec struct {
	ActivePage int `json:"activePage" yaml:"active_page"`
	RowsOnPage int `json:"rowsOnPage" yaml:"rows_on_page"`
}

// PageEvent describes the page settings of a Controller. It is returned by
// Controller.Page and delivered to page-change subscribers.
type PageEvent struct {
	ActivePage int `json:"activePage" yaml:"active_page"`
	RowsOnPage int `json:"rowsOnPage" yaml:"rows_on_page"`
	DataLength int `json:"dataLength" yaml:"data_length"`
}

// ShowsAll reports whether the spec puts every row on one page.
func (p PageSpec) ShowsAll() bool {
	return p.RowsOnPage <= ShowAll
}

// Normalize raises ActivePage to FirstPage and folds negative page sizes into ShowAll.
func (p PageSpec) Normalize() PageSpec {
	if p.ActivePage < FirstPage {
		p.ActivePage = FirstPage
	}
	if p.RowsOnPage < ShowAll {
		p.RowsOnPage = ShowAll
	}
	return p
}

// TotalPages returns ceil(dataLength/rowsOnPage), or 1 when rowsOnPage is ShowAll.
func TotalPages(dataLength, rowsOnPage int) int {
	if rowsOnPage <= ShowAll {
		return 1
	}
	if dataLength <= 0 {
		return 0
	}
	return (dataLength + rowsOnPage - 1) / rowsOnPage
}

// LastPage returns the highest page ActivePage may reference for dataLength
// rows. It is never below FirstPage, even for empty data.
func LastPage(dataLength, rowsOnPage int) int {
	return max(FirstPage, TotalPages(dataLength, rowsOnPage))
}

// Clamp normalizes the spec and pulls ActivePage back to the last page that
// exists for dataLength rows.
func (p PageSpec) Clamp(dataLength int) PageSpec {
	p = p.Normalize()
	if last := LastPage(dataLength, p.RowsOnPage); p.ActivePage > last {
		p.ActivePage = last
	}
	return p
}

// Window returns the half-open index range [lo, hi) of the active page,
// bounded by dataLength.
//
//nolint:nonamedreturns // Named returns document the range bounds.
func (p PageSpec) Window(dataLength int) (lo, hi int) {
	p = p.Normalize()
	if p.ShowsAll() {
		return 0, dataLength
	}
	lo = min((p.ActivePage-1)*p.RowsOnPage, dataLength)
	hi = min(lo+p.RowsOnPage, dataLength)
	return lo, hi
}

// pageKeepingRow returns the page that shows the first row of the current
// page after switching from oldRows to newRows rows per page.
func pageKeepingRow(activePage, oldRows, newRows int) int {
	if newRows <= ShowAll {
		return FirstPage
	}
	first := 0
	if oldRows > ShowAll && activePage > FirstPage {
		first = (activePage - 1) * oldRows
	}
	return first/newRows + 1
}
