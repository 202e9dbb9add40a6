package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tablectl/internal/cli/pagination"
	"github.com/rshade/tablectl/internal/datatable"
	"github.com/rshade/tablectl/internal/logging"
)

// NewPageCmd creates the page command, which prints one page of sorted records.
func NewPageCmd() *cobra.Command {
	var (
		flags  tableFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "page FILE...",
		Short: "Print one page of sorted records",
		Long: `Loads records from JSON arrays, NDJSON or YAML lists, sorts them and prints one page.

Use "-" to read from standard input. Records from several files are concatenated
in argument order before sorting. A page beyond the end is clamped to the last page.`,
		Example: `  # First 20 rows sorted by name
  tablectl page people.json --sort name

  # Third page of 50 rows, newest first
  tablectl page events.ndjson --sort created_at:desc --page 3 --page-size 50

  # Everything as YAML
  tablectl page people.json --page-size 0 --output yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, &flags, output, args)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json, yaml or ndjson")

	return cmd
}

// runPage loads, sorts and renders a single page.
func runPage(cmd *cobra.Command, flags *tableFlags, output string, args []string) error {
	ctx := cmd.Context()
	log := logging.Component(ctx, "cli")

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	session, err := flags.openTable(ctx, cmd, args)
	if err != nil {
		return err
	}

	sub := session.ctrl.OnPageChange(func(ev datatable.PageEvent) {
		log.Debug().
			Int("active_page", ev.ActivePage).
			Int("rows_on_page", ev.RowsOnPage).
			Int("data_length", ev.DataLength).
			Msg("page settled")
	})
	defer sub.Unsubscribe()

	rows := session.ctrl.Recompute()
	meta := pagination.NewPaginationMeta(session.ctrl.Page())

	if requested := session.params.Page; meta.CurrentPage < requested {
		cmd.PrintErrf("Warning: page %d is past the end; showing page %d of %d\n",
			requested, meta.CurrentPage, max(meta.TotalPages, 1))
	}

	log.Debug().
		Int("visible", len(rows)).
		Int("total_items", meta.TotalItems).
		Str("sort", pagination.FormatSort(session.ctrl.Sort())).
		Msg("page rendered")

	if err = renderPage(cmd.OutOrStdout(), output, rows, session.columns, meta, session.locale); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
