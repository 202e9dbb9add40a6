package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tablectl/internal/cli/pagination"
	"github.com/rshade/tablectl/internal/ingest"
	"github.com/rshade/tablectl/internal/tui"
)

// Output formats for rendered pages.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	OutputNDJSON = "ndjson"
)

// validateOutputFormat rejects unknown --output values.
func validateOutputFormat(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML, OutputNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (want table, json, yaml or ndjson)", format)
	}
}

// pageDocument is the structured output of the page command.
type pageDocument struct {
	Records    []ingest.Record           `json:"records"    yaml:"records"`
	Pagination pagination.PaginationMeta `json:"pagination" yaml:"pagination"`
}

// renderPage writes the visible records in the requested format.
func renderPage(
	w io.Writer,
	format string,
	rows []ingest.Record,
	columns []string,
	meta pagination.PaginationMeta,
	locale language.Tag,
) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pageDocument{Records: rows, Pagination: meta})
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:mnd // Standard YAML indent.
		if err := enc.Encode(pageDocument{Records: yamlRecords(rows), Pagination: meta}); err != nil {
			return err
		}
		return enc.Close()
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range rows {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderTable(w, rows, columns, meta, locale)
	}
}

// renderTable writes a bordered table followed by the pagination footer.
func renderTable(
	w io.Writer,
	rows []ingest.Record,
	columns []string,
	meta pagination.PaginationMeta,
	locale language.Tag,
) error {
	footer := tui.SubtleStyle.Render(meta.Summary(locale))
	if len(columns) == 0 || len(rows) == 0 {
		_, err := fmt.Fprintln(w, footer)
		return err
	}

	headerStyle := lipgloss.NewStyle().Foreground(tui.ColorHeader).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.ColorMuted)).
		Headers(columns...).
		Rows(tui.Cells(rows, columns)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(), footer)
	return err
}

// yamlRecords converts json.Number values so YAML renders them as numbers
// rather than quoted strings.
func yamlRecords(rows []ingest.Record) []ingest.Record {
	out := make([]ingest.Record, len(rows))
	for i, r := range rows {
		out[i] = yamlValue(r).(map[string]any)
	}
	return out
}

func yamlValue(v any) any {
	switch tv := v.(type) {
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return i
		}
		if f, err := tv.Float64(); err == nil {
			return f
		}
		return tv.String()
	case map[string]any:
		m := make(map[string]any, len(tv))
		for k, val := range tv {
			m[k] = yamlValue(val)
		}
		return m
	case []any:
		s := make([]any, len(tv))
		for i, val := range tv {
			s[i] = yamlValue(val)
		}
		return s
	default:
		return v
	}
}

// joinPaths renders input paths for titles.
func joinPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
