package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/rshade/tablectl/internal/cli/pagination"
	"github.com/rshade/tablectl/internal/config"
	"github.com/rshade/tablectl/internal/datatable"
	"github.com/rshade/tablectl/internal/ingest"
	"github.com/rshade/tablectl/internal/logging"
)

// tableFlags holds the flags shared by the page and browse commands.
type tableFlags struct {
	page     int
	pageSize int
	sort     string
	columns  []string
	format   string
}

// bind registers the flags on cmd.
func (f *tableFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", pagination.DefaultPage, "page number to show (1-based)")
	cmd.Flags().IntVar(&f.pageSize, "page-size", pagination.DefaultPageSize,
		"rows per page, 0 shows all rows (default from config table.rows_on_page)")
	cmd.Flags().StringVar(&f.sort, "sort", "",
		"sort fields and order, e.g. 'name', 'age:desc', 'city.zip,name:asc'")
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil,
		"comma-separated field paths to display (default: every field)")
	cmd.Flags().StringVar(&f.format, "format", "",
		"input format: json, ndjson or yaml (default: from file extension, json for stdin)")
}

// params returns the validated pagination parameters, taking the page size
// from cfg unless --page-size was given.
func (f *tableFlags) params(cmd *cobra.Command, cfg *config.Config) (pagination.PaginationParams, error) {
	p := pagination.PaginationParams{Page: f.page, PageSize: f.pageSize, Sort: f.sort}
	if !cmd.Flags().Changed("page-size") {
		p.PageSize = cfg.Table.RowsOnPage
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// tableSession is a loaded controller ready to render.
type tableSession struct {
	ctrl    *datatable.Controller[ingest.Record]
	catalog *pagination.FieldCatalog
	params  pagination.PaginationParams
	columns []string
	paths   []string
	format  ingest.Format
	locale  language.Tag
}

// openTable loads the records named by paths and configures a controller
// with the configuration defaults and the command flags.
func (f *tableFlags) openTable(ctx context.Context, cmd *cobra.Command, paths []string) (*tableSession, error) {
	cfg := configFromContext(ctx)
	log := logging.Component(ctx, "cli")

	params, err := f.params(cmd, cfg)
	if err != nil {
		return nil, err
	}
	format, err := ingest.ParseFormat(f.format)
	if err != nil {
		return nil, err
	}

	records, err := ingest.LoadAll(ctx, paths, format)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	opts, err := cfg.ControllerOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, datatable.WithLogger(logging.FromContext(ctx)))

	ctrl := datatable.New[ingest.Record](opts...)
	ctrl.SetInputData(records)
	ctrl.SetSort(params.SortSpec(cfg.DefaultSortOrder()))
	ctrl.SetPage(params.Page, params.PageSize)

	catalog := pagination.DiscoverFields(records)
	for _, field := range catalog.UnknownFields(ctrl.Sort()) {
		log.Warn().Str("field", field).Msg("sort field not present in any record")
		cmd.PrintErrf("Warning: sort field %q is not present in any record; valid fields: %s\n",
			field, strings.Join(catalog.GetValidFields(), ", "))
	}

	columns := f.columns
	if len(columns) == 0 {
		columns = catalog.GetValidFields()
	}

	locale := tableLocale(cfg, log)

	return &tableSession{
		ctrl:    ctrl,
		catalog: catalog,
		params:  params,
		columns: columns,
		paths:   paths,
		format:  format,
		locale:  locale,
	}, nil
}

// tableLocale parses the configured locale. Configuration loaded for
// config-optional commands is not validated, so a bad tag falls back to the
// root locale.
func tableLocale(cfg *config.Config, log zerolog.Logger) language.Tag {
	tag, err := language.Parse(cfg.Table.Locale)
	if err != nil {
		log.Warn().Err(err).Str("locale", cfg.Table.Locale).Msg("invalid locale, using root locale")
		return language.Und
	}
	return tag
}
