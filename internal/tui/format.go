package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rshade/tablectl/internal/datatable"
)

// FormatValue renders a record value for a table cell. Nested objects and
// lists are rendered as compact JSON.
func FormatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case json.Number:
		return tv.String()
	case bool:
		return strconv.FormatBool(tv)
	case int:
		return strconv.Itoa(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case time.Time:
		return tv.Format(time.RFC3339)
	case map[string]any, []any:
		data, err := json.Marshal(tv)
		if err != nil {
			return fmt.Sprint(tv)
		}
		return string(data)
	default:
		return fmt.Sprint(tv)
	}
}

// Cell resolves path in record and formats the value. Missing values render
// as an empty string.
func Cell(record map[string]any, path string) string {
	v, ok := datatable.Resolve(record, path)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Cells returns one formatted row per record for the given columns.
func Cells(records []map[string]any, columns []string) [][]string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = Cell(rec, col)
		}
		rows[i] = row
	}
	return rows
}
