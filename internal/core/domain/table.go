package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Table is an ordered tabular query result. Column order follows the first
// row of the remote response; every row holds one value per column, aligned
// by position.
type Table struct {
	// Columns are the column names, in response order.
	Columns []string `json:"columns"`
	// Rows are the data rows. Each row is parallel to Columns; a value
	// may be nil when the remote record omitted the column.
	Rows [][]any `json:"rows"`
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Cell returns the value at the given row and column name.
// The second return is false if the column does not exist or the row index
// is out of range.
func (t *Table) Cell(row int, column string) (any, bool) {
	if row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	for i, c := range t.Columns {
		if c == column {
			if i >= len(t.Rows[row]) {
				return nil, false
			}
			return t.Rows[row][i], true
		}
	}
	return nil, false
}

// CellString renders a single cell value for display. Numbers keep their
// JSON representation, nil becomes an empty string.
func CellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
