package datatable

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

type options struct {
	page       PageSpec
	sort       SortSpec
	comparator Comparator
	logger     zerolog.Logger
}

func defaultOptions() options {
	return options{
		page: PageSpec{ActivePage: FirstPage, RowsOnPage: DefaultRowsOnPage},
		comparator: Comparator{
			Collation: LocaleCollation(language.Und),
			Missing:   MissingLast,
		},
		logger: zerolog.Nop(),
	}
}

// Option configures a Controller at construction time.
type Option func(*options)

// WithRowsOnPage sets the initial page size. Values <= 0 mean ShowAll.
func WithRowsOnPage(rows int) Option {
	return func(o *options) {
		o.page.RowsOnPage = rows
	}
}

// WithActivePage sets the initial page number. It is clamped on the first Recompute.
func WithActivePage(page int) Option {
	return func(o *options) {
		o.page.ActivePage = page
	}
}

// WithSort sets the initial sort.
func WithSort(spec SortSpec) Option {
	return func(o *options) {
		o.sort = spec.Normalize()
	}
}

// WithCollation sets how strings are ordered. A nil collation selects
// CaseInsensitiveCollation.
func WithCollation(c Collation) Option {
	return func(o *options) {
		o.comparator.Collation = c
	}
}

// WithMissing sets where records with a missing sort value are placed.
func WithMissing(p MissingPolicy) Option {
	return func(o *options) {
		o.comparator.Missing = p
	}
}

// WithLogger sets the logger used for recompute diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
