// Package datatable sorts and paginates in-memory records for table views.
//
// A Controller owns the input records, the current SortSpec and PageSpec, and
// a cached visible slice. Hosts change inputs through setters (or a Changes
// descriptor) and call Recompute once per check cycle:
//
//	ctrl := datatable.New[map[string]any](datatable.WithRowsOnPage(25))
//	ctrl.OnPageChange(func(ev datatable.PageEvent) { ... })
//	ctrl.SetInputData(records)
//	ctrl.SetSort(datatable.SortBy(datatable.SortAsc, "name", "city.zip"))
//	rows := ctrl.Recompute()
//
// Recompute only does work when an input changed; otherwise it returns the
// same slice as before. Sorting is stable and multi-key, resolves dotted paths
// into nested maps and structs, orders strings with a configurable Collation,
// and places missing values according to a MissingPolicy.
package datatable
