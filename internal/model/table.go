package model

import "strings"

// Table is a decoded tabular source: a header row followed by data rows.
// Rows may be shorter or longer than the header.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// ColumnIndex maps each trimmed header name to its position. The first
// occurrence wins when a header repeats.
func (t Table) ColumnIndex() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, col := range t.Header {
		name := strings.TrimSpace(col)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

// MissingColumns returns the names in cols that are not present in the header,
// in the order given.
func (t Table) MissingColumns(cols ...string) []string {
	idx := t.ColumnIndex()
	var missing []string
	for _, c := range cols {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// Cell returns the trimmed value at column i of row, or "" when the row is short.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
