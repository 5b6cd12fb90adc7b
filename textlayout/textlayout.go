// Package textlayout recovers substitution tables from PDFs that carry
// a proper text layer. Positioned glyphs inside the plan's table area
// are clustered into lines, logical rows, and columns purely from their
// coordinates; no ruling lines are required.
package textlayout

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/bszet/subplan/model"
)

// Area is a page region in PDF user-space coordinates (origin at the
// bottom-left corner, units in points).
type Area struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// PlanArea is the region of the plan template that contains the table,
// excluding the logo banner above and the footer below.
var PlanArea = Area{Left: 30, Bottom: 100, Right: 790, Top: 480}

func (a Area) contains(x, y float64) bool {
	return x >= a.Left && x <= a.Right && y >= a.Bottom && y <= a.Top
}

// Config holds the clustering tolerances, all in points.
type Config struct {
	// Area restricts extraction to the table region of the page.
	Area Area

	// RowTol merges adjacent text lines into one logical table row;
	// multi-line cells sit closer together than separate rows.
	RowTol float64

	// LineTol groups glyphs onto the same text line.
	LineTol float64

	// CellGap is the horizontal gap that separates two cells; smaller
	// gaps are word spacing inside one cell.
	CellGap float64

	// ColTol clusters the left edges of cells across rows into columns.
	ColTol float64
}

// DefaultConfig returns the tolerances tuned for the plan template.
func DefaultConfig() Config {
	return Config{
		Area:    PlanArea,
		RowTol:  20,
		LineTol: 2,
		CellGap: 12,
		ColTol:  20,
	}
}

// Extractor turns text-layer pages into tables.
type Extractor struct {
	config Config
}

// New creates an extractor with default configuration.
func New() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// Configure sets the clustering tolerances.
func (e *Extractor) Configure(config Config) {
	e.config = config
}

// fragment is one cell-level run of text on one line: glyphs joined by
// word spacing, bounded left at x, on the line at y.
type fragment struct {
	x, y float64
	text string
}

// Tables extracts one table per page of the document. Pages whose text
// layer yields nothing produce a nil entry so the caller can fall back
// to rasterization for exactly those pages.
func (e *Extractor) Tables(doc []byte) ([]*model.Table, error) {
	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	tables := make([]*model.Table, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			tables = append(tables, nil)
			continue
		}
		fragments := e.pageFragments(page)
		if len(fragments) == 0 {
			tables = append(tables, nil)
			continue
		}
		tables = append(tables, e.buildTable(fragments))
	}
	return tables, nil
}

// pageFragments collects the page's glyphs inside the table area and
// assembles them into cell-level fragments.
func (e *Extractor) pageFragments(page pdf.Page) []fragment {
	var glyphs []pdf.Text
	for _, t := range page.Content().Text {
		if t.S == "" {
			continue
		}
		if e.config.Area.contains(t.X, t.Y) {
			glyphs = append(glyphs, t)
		}
	}
	return e.assemble(glyphs)
}

// assemble groups glyphs into lines by y, then splits each line into
// fragments wherever the horizontal gap exceeds the cell gap.
func (e *Extractor) assemble(glyphs []pdf.Text) []fragment {
	if len(glyphs) == 0 {
		return nil
	}

	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	var fragments []fragment
	lineStart := 0
	for i := 1; i <= len(glyphs); i++ {
		if i < len(glyphs) && glyphs[lineStart].Y-glyphs[i].Y <= e.config.LineTol {
			continue
		}
		fragments = append(fragments, e.splitLine(glyphs[lineStart:i])...)
		lineStart = i
	}
	return fragments
}

// splitLine turns one line of x-sorted glyphs into fragments, breaking
// on gaps wider than the cell gap.
func (e *Extractor) splitLine(line []pdf.Text) []fragment {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})

	var fragments []fragment
	var text strings.Builder
	startX := line[0].X
	endX := line[0].X

	flush := func() {
		s := strings.TrimSpace(text.String())
		if s != "" {
			fragments = append(fragments, fragment{x: startX, y: line[0].Y, text: s})
		}
		text.Reset()
	}

	for i, g := range line {
		if i > 0 {
			gap := g.X - endX
			switch {
			case gap > e.config.CellGap:
				flush()
				startX = g.X
			case gap > g.FontSize*0.25:
				text.WriteByte(' ')
			}
		}
		text.WriteString(g.S)
		if right := g.X + g.W; right > endX {
			endX = right
		}
	}
	flush()
	return fragments
}

// buildTable clusters fragments into logical rows and global columns
// and renders the result as a padded table. Fragments of a multi-line
// cell are joined with a newline, top line first.
func (e *Extractor) buildTable(fragments []fragment) *model.Table {
	rows := e.clusterRows(fragments)
	columns := e.clusterColumns(fragments)

	var cells [][]string
	for _, row := range rows {
		line := make([][]string, len(columns))
		for _, f := range row {
			col := nearestColumn(columns, f.x)
			line[col] = append(line[col], f.text)
		}
		rendered := make([]string, len(columns))
		for col, parts := range line {
			rendered[col] = strings.Join(parts, "\n")
		}
		cells = append(cells, rendered)
	}

	table := model.NewTable(cells)
	table.Pad()
	return table
}

// clusterRows groups fragments into logical rows: fragments within the
// row tolerance of the row's topmost line belong to the same row.
// Input order is already top to bottom, and the grouping preserves it.
func (e *Extractor) clusterRows(fragments []fragment) [][]fragment {
	sorted := make([]fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].y > sorted[j].y
	})

	var rows [][]fragment
	for _, f := range sorted {
		if len(rows) > 0 {
			current := rows[len(rows)-1]
			if current[0].y-f.y <= e.config.RowTol {
				rows[len(rows)-1] = append(current, f)
				continue
			}
		}
		rows = append(rows, []fragment{f})
	}
	return rows
}

// clusterColumns derives the table's column positions from the left
// edges of all fragments, returned in reading order.
func (e *Extractor) clusterColumns(fragments []fragment) []float64 {
	xs := make([]float64, len(fragments))
	for i, f := range fragments {
		xs[i] = f.x
	}
	sort.Float64s(xs)

	var columns []float64
	for _, x := range xs {
		if len(columns) == 0 || x-columns[len(columns)-1] > e.config.ColTol {
			columns = append(columns, x)
		}
	}
	return columns
}

func nearestColumn(columns []float64, x float64) int {
	best := 0
	bestDist := -1.0
	for i, c := range columns {
		dist := x - c
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
