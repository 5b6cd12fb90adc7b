// Package extract produces one substitution table per plan page. The
// PDF's text layer is always tried first; pages without a usable text
// layer are rendered to an image and reconstructed via OCR.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/bszet/subplan/model"
	"github.com/bszet/subplan/pdfdoc"
	"github.com/bszet/subplan/reconstruct"
	"github.com/bszet/subplan/textlayout"
)

// DefaultDPI is the rendering resolution for the OCR fallback, tuned so
// cell heights land inside the reconstruction's height band.
const DefaultDPI = 205

// Extractor runs the two-stage table extraction.
type Extractor struct {
	text *textlayout.Extractor
	rec  *reconstruct.Reconstructor
	dpi  float64
	log  *slog.Logger
}

// New creates an extractor. The detector powers the OCR fallback and
// may be nil, in which case pages without a text layer fail.
func New(det reconstruct.Detector, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		text: textlayout.New(),
		rec:  reconstruct.New(det),
		dpi:  DefaultDPI,
		log:  log,
	}
}

// SetDPI overrides the fallback rendering resolution.
func (e *Extractor) SetDPI(dpi float64) {
	e.dpi = dpi
}

// TextConfig overrides the text-layer clustering tolerances.
func (e *Extractor) TextConfig(config textlayout.Config) {
	e.text.Configure(config)
}

// Tables extracts one table per page. A text-layer failure is not
// fatal: every page the text pass could not serve goes through the
// raster fallback, and only a fallback error aborts the extraction.
func (e *Extractor) Tables(doc []byte) ([]*model.Table, error) {
	tables, err := e.text.Tables(doc)
	if err != nil {
		e.log.Warn("text layer unreadable, falling back to OCR for all pages", "error", err)
		pageCount, err := pdfdoc.PageCount(doc)
		if err != nil {
			return nil, err
		}
		tables = make([]*model.Table, pageCount)
	}

	for i, table := range tables {
		if table != nil {
			continue
		}
		e.log.Info("reconstructing page via OCR", "page", i+1)
		rebuilt, err := e.reconstructPage(doc, i+1)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		tables[i] = rebuilt
	}
	return tables, nil
}

func (e *Extractor) reconstructPage(doc []byte, page int) (*model.Table, error) {
	img, err := pdfdoc.RasterizePage(doc, page, e.dpi)
	if err != nil {
		return nil, err
	}
	return e.rec.Reconstruct(img)
}
