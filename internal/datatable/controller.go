package datatable

import (
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Controller sorts and paginates a collection of records and caches the
// visible page between check cycles.
//
// Setters only record the new inputs and mark the controller dirty; the work
// happens in Recompute, which the host calls once per check cycle. While
// nothing changed, Recompute returns the previously computed slice itself.
//
// A Controller is not safe for concurrent use. Drive it from a single
// goroutine, typically the host's update loop.
type Controller[T any] struct {
	input      []T
	sort       SortSpec
	page       PageSpec
	comparator Comparator
	logger     zerolog.Logger

	dirty       bool
	dataVersion uint64
	sortVersion uint64

	// sorted memoizes the sorted copy of input for (sortedData, sortedSort).
	sorted      []T
	sortedValid bool
	sortedData  uint64
	sortedSort  uint64

	data      []T
	revision  uint64
	published PageSpec

	pageChange Emitter[PageEvent]
	sortChange Emitter[SortSpec]
}

// New returns a Controller with no data, no sort, page 1 and
// DefaultRowsOnPage rows per page.
func New[T any](opts ...Option) *Controller[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[T]{
		input:      []T{},
		sort:       o.sort,
		page:       o.page,
		comparator: o.comparator,
		logger:     o.logger.With().Str("component", "datatable").Logger(),
		dirty:      true,
		data:       []T{},
		published:  o.page,
	}
}

// SetInputData replaces the records. A nil slice is treated as empty.
func (c *Controller[T]) SetInputData(data []T) {
	if data == nil {
		data = []T{}
	}
	c.input = data
	c.dataVersion++
	c.dirty = true
}

// InputData returns the records last passed to SetInputData.
func (c *Controller[T]) InputData() []T {
	return c.input
}

// SetSort changes the sort. An empty order means ascending. Setting a spec
// equal to the current one is a no-op; otherwise sort-change subscribers are
// notified immediately.
func (c *Controller[T]) SetSort(spec SortSpec) {
	spec = spec.Normalize()
	if spec.Equal(c.sort) {
		return
	}
	c.sort = spec
	c.sortVersion++
	c.dirty = true
	c.sortChange.Emit(c.Sort())
}

// Sort returns a copy of the current sort.
func (c *Controller[T]) Sort() SortSpec {
	return SortSpec{By: slices.Clone(c.sort.By), Order: c.sort.Order.Normalize()}
}

// SetPage sets the active page and page size together. Values are not
// validated here; Recompute normalizes and clamps them. Passing the current
// values is a no-op.
func (c *Controller[T]) SetPage(activePage, rowsOnPage int) {
	if c.page.ActivePage == activePage && c.page.RowsOnPage == rowsOnPage {
		return
	}
	c.page = PageSpec{ActivePage: activePage, RowsOnPage: rowsOnPage}
	c.dirty = true
}

// SetRowsOnPage changes the page size and moves to the page that contains
// the first row of the current page.
func (c *Controller[T]) SetRowsOnPage(rowsOnPage int) {
	if c.page.RowsOnPage == rowsOnPage {
		return
	}
	c.SetPage(pageKeepingRow(c.page.ActivePage, c.page.RowsOnPage, rowsOnPage), rowsOnPage)
}

// Page returns the current page settings and the number of input records.
func (c *Controller[T]) Page() PageEvent {
	return PageEvent{
		ActivePage: c.page.ActivePage,
		RowsOnPage: c.page.RowsOnPage,
		DataLength: len(c.input),
	}
}

// TotalPages returns the number of pages for the current input and page size.
func (c *Controller[T]) TotalPages() int {
	return TotalPages(len(c.input), c.page.RowsOnPage)
}

// Data returns the visible slice computed by the last Recompute.
func (c *Controller[T]) Data() []T {
	return c.data
}

// Dirty reports whether an input changed since the last Recompute.
func (c *Controller[T]) Dirty() bool {
	return c.dirty
}

// Revision counts the recomputations that did actual work.
func (c *Controller[T]) Revision() uint64 {
	return c.revision
}

// OnPageChange registers fn to receive page settings whenever a Recompute
// changes the active page or page size.
func (c *Controller[T]) OnPageChange(fn func(PageEvent)) Subscription {
	return c.pageChange.Subscribe(fn)
}

// OnSortChange registers fn to receive the new sort whenever SetSort changes it.
func (c *Controller[T]) OnSortChange(fn func(SortSpec)) Subscription {
	return c.sortChange.Subscribe(fn)
}

// Recompute is the check tick. When clean it returns the cached slice
// unchanged. When dirty it sorts (reusing the previous sort when only the page
// moved), clamps the active page, slices the window, caches it and notifies
// page-change subscribers if the page settings differ from the last published
// ones.
func (c *Controller[T]) Recompute() []T {
	if !c.dirty {
		c.logger.Trace().Uint64("revision", c.revision).Msg("recompute skipped, inputs unchanged")
		return c.data
	}

	start := time.Now()
	resorted := c.ensureSorted()

	n := len(c.sorted)
	c.page = c.page.Clamp(n)
	lo, hi := c.page.Window(n)
	c.data = c.sorted[lo:hi:hi]
	c.dirty = false
	c.revision++

	c.logger.Debug().
		Int("rows", n).
		Int("active_page", c.page.ActivePage).
		Int("rows_on_page", c.page.RowsOnPage).
		Int("visible", len(c.data)).
		Bool("resorted", resorted).
		Uint64("revision", c.revision).
		Dur("elapsed", time.Since(start)).
		Msg("recomputed visible slice")

	if c.page != c.published {
		c.published = c.page
		c.pageChange.Emit(c.Page())
	}
	return c.data
}

func (c *Controller[T]) ensureSorted() bool {
	if c.sortedValid && c.sortedData == c.dataVersion && c.sortedSort == c.sortVersion {
		return false
	}
	c.sorted = SortRecords(c.comparator, c.input, c.sort)
	c.sortedData = c.dataVersion
	c.sortedSort = c.sortVersion
	c.sortedValid = true
	return true
}
