// Package subplan turns school substitution-plan PDFs into structured
// schedule-change events. The pipeline extracts one table per page
// (text layer first, OCR reconstruction as fallback), parses the rows
// into events with a record of everything unparseable, and can split a
// multi-day document into per-day sub-documents.
package subplan

import (
	"log/slog"

	"github.com/bszet/subplan/extract"
	"github.com/bszet/subplan/model"
	"github.com/bszet/subplan/parse"
	"github.com/bszet/subplan/reconstruct"
	"github.com/bszet/subplan/segment"
	"github.com/bszet/subplan/textlayout"
)

// Options tunes the pipeline. The zero value of a field means its
// default.
type Options struct {
	// RowTol is the text-layer row clustering tolerance in points.
	RowTol float64

	// DPI is the rendering resolution of the OCR fallback.
	DPI float64

	// Logger receives pipeline diagnostics; nil uses slog.Default.
	Logger *slog.Logger
}

// Pipeline is the document-to-events pipeline. It is safe for
// concurrent use when the injected detector is; the gosseract-backed
// detector serializes itself.
type Pipeline struct {
	extractor *extract.Extractor
}

// NewPipeline builds a pipeline around the given OCR detector. The
// detector may be nil: text-layer documents still parse, and only
// pages that need the raster fallback fail.
func NewPipeline(det reconstruct.Detector, opts Options) *Pipeline {
	ex := extract.New(det, opts.Logger)
	if opts.DPI > 0 {
		ex.SetDPI(opts.DPI)
	}
	if opts.RowTol > 0 {
		tc := textlayout.DefaultConfig()
		tc.RowTol = opts.RowTol
		ex.TextConfig(tc)
	}
	return &Pipeline{extractor: ex}
}

// ExtractTables returns one table per page of the document.
func (p *Pipeline) ExtractTables(doc []byte) ([]*model.Table, error) {
	return p.extractor.Tables(doc)
}

// Parse extracts the document's tables and assembles them into events
// and failures.
func (p *Pipeline) Parse(doc []byte) (*parse.Result, error) {
	tables, err := p.ExtractTables(doc)
	if err != nil {
		return nil, err
	}
	return parse.Tables(tables), nil
}

// SegmentByDay returns a lazy iterator over the document's days.
func (p *Pipeline) SegmentByDay(doc []byte) (*segment.Iterator, error) {
	tables, err := p.ExtractTables(doc)
	if err != nil {
		return nil, err
	}
	return segment.NewIterator(doc, tables)
}
