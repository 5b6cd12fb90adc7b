package model

import (
	"image"
	"strings"
)

// SchemaWidth is the fixed number of columns a substitution table must
// have to be accepted downstream. The columns are, left to right:
// class(es), lesson, subject change, room change, teacher change, and
// free-text message.
const SchemaWidth = 6

// Table is an ordered sequence of rows of cell strings. Row 0 is the
// header/date row. Rows may come out of extraction ragged; Pad squares
// them off to the table's width before validation.
type Table struct {
	Rows [][]string
}

// NewTable creates a table from the given rows.
func NewTable(rows [][]string) *Table {
	return &Table{Rows: rows}
}

// Width returns the number of columns, defined as the length of the
// longest row.
func (t *Table) Width() int {
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Pad extends every row with empty cells up to the table width, so that
// short rows behave like a rectangular grid.
func (t *Table) Pad() {
	w := t.Width()
	for i, row := range t.Rows {
		for len(row) < w {
			row = append(row, "")
		}
		t.Rows[i] = row
	}
}

// Cell returns the cell at the given row and column, or the empty
// string when the position is out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// String renders the table as tab-separated rows, for logs and tests.
func (t *Table) String() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Detection is one recognized text region returned by the OCR detector:
// the text plus the bounding rectangle it occupies in the queried image.
type Detection struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}
