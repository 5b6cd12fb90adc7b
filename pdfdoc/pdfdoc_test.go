package pdfdoc

import (
	"bytes"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

// samplePDF builds an in-memory landscape document with the given
// number of pages, each labeled so slices can be told apart.
func samplePDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 14)
	for i := 1; i <= pages; i++ {
		doc.AddPage()
		doc.Cell(100, 20, "page")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("building sample PDF: %v", err)
	}
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	pdf := samplePDF(t, 3)
	count, err := PageCount(pdf)
	if err != nil {
		t.Fatalf("PageCount() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("PageCount() = %d, want 3", count)
	}
}

func TestPageCountGarbage(t *testing.T) {
	if _, err := PageCount([]byte("not a pdf")); err == nil {
		t.Error("PageCount() on garbage should fail")
	}
}

func TestPageRange(t *testing.T) {
	pdf := samplePDF(t, 4)
	slice, err := PageRange(pdf, 2, 3)
	if err != nil {
		t.Fatalf("PageRange() failed: %v", err)
	}
	count, err := PageCount(slice)
	if err != nil {
		t.Fatalf("counting slice: %v", err)
	}
	if count != 2 {
		t.Errorf("slice has %d pages, want 2", count)
	}
}

func TestPage(t *testing.T) {
	pdf := samplePDF(t, 2)
	single, err := Page(pdf, 2)
	if err != nil {
		t.Fatalf("Page() failed: %v", err)
	}
	count, err := PageCount(single)
	if err != nil {
		t.Fatalf("counting page: %v", err)
	}
	if count != 1 {
		t.Errorf("single page slice has %d pages", count)
	}
}

func TestPageRangeInvalid(t *testing.T) {
	pdf := samplePDF(t, 2)
	if _, err := PageRange(pdf, 0, 1); err == nil {
		t.Error("from=0 should fail")
	}
	if _, err := PageRange(pdf, 2, 1); err == nil {
		t.Error("to<from should fail")
	}
}

func TestRasterizePage(t *testing.T) {
	pdf := samplePDF(t, 2)
	img, err := RasterizePage(pdf, 1, 72)
	if err != nil {
		t.Fatalf("RasterizePage() failed: %v", err)
	}
	if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		t.Errorf("rendered image has empty bounds: %v", img.Bounds())
	}
	// A4 landscape is wider than tall.
	if img.Bounds().Dx() <= img.Bounds().Dy() {
		t.Errorf("expected landscape render, got %v", img.Bounds())
	}
}

func TestRasterizePageOutOfRange(t *testing.T) {
	pdf := samplePDF(t, 1)
	if _, err := RasterizePage(pdf, 2, 72); err == nil {
		t.Error("out-of-range page should fail")
	}
}

func TestRasterizeAll(t *testing.T) {
	pdf := samplePDF(t, 3)
	images, err := Rasterize(pdf, 72)
	if err != nil {
		t.Fatalf("Rasterize() failed: %v", err)
	}
	if len(images) != 3 {
		t.Errorf("rendered %d pages, want 3", len(images))
	}
}
