// Package pdfdoc provides the page-level PDF operations the pipeline
// needs: counting pages, slicing page ranges into standalone documents,
// and rendering pages to raster images for the OCR fallback.
package pdfdoc

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the number of pages in the document.
func PageCount(pdf []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return count, nil
}

// Page extracts a single page (1-based) as a standalone PDF.
func Page(pdf []byte, page int) ([]byte, error) {
	return PageRange(pdf, page, page)
}

// PageRange extracts the inclusive 1-based page range [from, to] as a
// standalone PDF.
func PageRange(pdf []byte, from, to int) ([]byte, error) {
	if from < 1 || to < from {
		return nil, fmt.Errorf("invalid page range %d-%d", from, to)
	}
	var out bytes.Buffer
	selection := []string{fmt.Sprintf("%d-%d", from, to)}
	if err := api.Trim(bytes.NewReader(pdf), &out, selection, nil); err != nil {
		return nil, fmt.Errorf("extracting pages %d-%d: %w", from, to, err)
	}
	return out.Bytes(), nil
}

// RasterizePage renders one page (1-based) at the given DPI.
func RasterizePage(pdf []byte, page int, dpi float64) (image.Image, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer doc.Close()

	if page < 1 || page > doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", page, doc.NumPage())
	}
	img, err := doc.ImageDPI(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}
	return img, nil
}

// Rasterize renders every page of the document at the given DPI, in
// page order.
func Rasterize(pdf []byte, dpi float64) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer doc.Close()

	images := make([]image.Image, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
