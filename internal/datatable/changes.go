package datatable

// Change carries the previous and current value of one host-driven input.
type Change[V any] struct {
	Previous V
	Current  V
}

// Changes describes which inputs the host changed since the last check cycle.
// Nil entries are unchanged.
type Changes[T any] struct {
	InputData  *Change[[]T]
	SortBy     *Change[[]string]
	SortOrder  *Change[SortOrder]
	ActivePage *Change[int]
	RowsOnPage *Change[int]
}

// IsEmpty reports whether no input changed.
func (ch Changes[T]) IsEmpty() bool {
	return ch.InputData == nil && ch.SortBy == nil && ch.SortOrder == nil &&
		ch.ActivePage == nil && ch.RowsOnPage == nil
}

// ApplyChanges feeds a change descriptor into the controller. A page size
// change on its own keeps the first visible row on screen; together with an
// active page change both are applied as one SetPage. Changes only mark the
// controller dirty; call Recompute to produce the new slice.
func (c *Controller[T]) ApplyChanges(ch Changes[T]) {
	if ch.IsEmpty() {
		return
	}

	if ch.InputData != nil {
		c.SetInputData(ch.InputData.Current)
	}

	if ch.SortBy != nil || ch.SortOrder != nil {
		spec := c.Sort()
		if ch.SortBy != nil {
			spec.By = ch.SortBy.Current
		}
		if ch.SortOrder != nil {
			spec.Order = ch.SortOrder.Current
		}
		c.SetSort(spec)
	}

	switch {
	case ch.ActivePage != nil && ch.RowsOnPage != nil:
		c.SetPage(ch.ActivePage.Current, ch.RowsOnPage.Current)
	case ch.ActivePage != nil:
		c.SetPage(ch.ActivePage.Current, c.page.RowsOnPage)
	case ch.RowsOnPage != nil:
		c.SetRowsOnPage(ch.RowsOnPage.Current)
	}
}
