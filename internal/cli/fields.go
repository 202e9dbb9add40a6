package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/tablectl/internal/cli/pagination"
	"github.com/rshade/tablectl/internal/ingest"
)

// fieldInfo is one row of the fields command output.
type fieldInfo struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}

// NewFieldsCmd creates the fields command, which lists sortable field paths.
func NewFieldsCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "fields FILE...",
		Short: "List the field paths that can be sorted and displayed",
		Long:  "Lists every leaf field path found in the records, with the number of records that define it",
		Example: `  # List the fields of a file
  tablectl fields people.json

  # As JSON
  tablectl fields people.ndjson --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFieldsCmd(cmd, format, output, args)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: json, ndjson or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table or json")

	return cmd
}

// runFieldsCmd loads the records and writes the discovered fields.
func runFieldsCmd(cmd *cobra.Command, format, output string, args []string) error {
	if output != OutputTable && output != OutputJSON {
		return fmt.Errorf("unsupported output format: %s (want table or json)", output)
	}
	inFormat, err := ingest.ParseFormat(format)
	if err != nil {
		return err
	}

	records, err := ingest.LoadAll(cmd.Context(), args, inFormat)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	catalog := pagination.DiscoverFields(records)
	fields := catalog.GetValidFields()
	infos := make([]fieldInfo, len(fields))
	for i, f := range fields {
		infos[i] = fieldInfo{Path: f, Records: catalog.Count(f)}
	}

	if output == OutputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(infos) == 0 {
		cmd.Println("No fields found.")
		return nil
	}

	const tabPadding = 2
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "Field\tRecords")
	fmt.Fprintln(w, "-----\t-------")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d/%d\n", info.Path, info.Records, len(records))
	}
	return w.Flush()
}
