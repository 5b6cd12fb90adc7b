package reconstruct

import (
	"image"
	"image/color"
	"testing"

	"github.com/bszet/subplan/model"
	"github.com/bszet/subplan/parse"
)

// scriptedDetector returns one canned text per Detect call, in order.
// An empty script entry means no text was recognized in that region.
type scriptedDetector struct {
	responses []string
	calls     int
}

func (d *scriptedDetector) Detect(img image.Image) ([]model.Detection, error) {
	if d.calls >= len(d.responses) {
		d.calls++
		return nil, nil
	}
	text := d.responses[d.calls]
	d.calls++
	if text == "" {
		return nil, nil
	}
	return []model.Detection{{Text: text, Box: img.Bounds()}}, nil
}

// darkRect paints a filled dark rectangle onto a white page.
func darkRect(img *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
}

// testPage builds a synthetic plan page: a banner row of header
// artifacts at the top and one data row of six cells below, all sized
// inside the cell-height band.
func testPage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 1000, 620))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	xs := []int{40, 190, 340, 490, 640, 790}
	for _, x := range xs {
		darkRect(img, image.Rect(x, 100, x+140, 180)) // header artifacts
		darkRect(img, image.Rect(x, 400, x+140, 480)) // data row
	}
	return img
}

func TestReconstructEndToEnd(t *testing.T) {
	// Components are visited bottom-to-top, right-to-left: first the
	// six data cells (message first), then the six banner artifacts,
	// finally the date region above the table.
	det := &scriptedDetector{responses: []string{
		"Ausfall", "(Schmidt)", "8202", "DEU", "3", "BGY 12",
		"[", "BSZET", "Vertretungsplan", "BGY", "/", "|",
		"07.02.2022",
	}}

	r := New(det)
	table, err := r.Reconstruct(testPage())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}

	if det.calls != 13 {
		t.Errorf("detector called %d times, want 13", det.calls)
	}
	if table.RowCount() != 2 {
		t.Fatalf("table has %d rows, want 2 (header + data):\n%s", table.RowCount(), table)
	}
	if got := table.Width(); got != model.SchemaWidth {
		t.Fatalf("table width = %d, want %d", got, model.SchemaWidth)
	}

	if got := table.Cell(0, 0); got != "07.02.2022\nKlasse" {
		t.Errorf("header cell = %q, want date + Klasse label", got)
	}

	wantRow := []string{"BGY 12", "3.", "DEU", "B202", "(Schmidt)", "Ausfall"}
	for col, want := range wantRow {
		if got := table.Cell(1, col); got != want {
			t.Errorf("data cell %d = %q, want %q", col, got, want)
		}
	}

	// The reconstructed table must parse into exactly one event.
	result := parse.Tables([]*model.Table{table})
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
	if len(result.Data) != 1 {
		t.Fatalf("parsed %d events, want 1", len(result.Data))
	}

	ev := result.Data[0]
	if ev.Date != "2022-02-07" {
		t.Errorf("event date = %q, want 2022-02-07", ev.Date)
	}
	if len(ev.Classes) != 1 || ev.Classes[0] != "BGY12" {
		t.Errorf("event classes = %v, want [BGY12]", ev.Classes)
	}
	if ev.Lesson != 3 {
		t.Errorf("event lesson = %d, want 3", ev.Lesson)
	}
	if ev.Action != model.ActionCancellation || ev.GuessedAction {
		t.Errorf("event action = %s (guessed=%v), want cancellation from message", ev.Action, ev.GuessedAction)
	}
}

func TestReconstructWithoutDetector(t *testing.T) {
	r := New(nil)
	if _, err := r.Reconstruct(testPage()); err == nil {
		t.Error("Reconstruct() without detector should fail")
	}
}

func TestIsPageFurniture(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"BSZET", true},
		{"Vertretungsplan", true},
		{"vertretung", true},
		{"BGY", true},
		{"|", true},
		{"", false},
		{"BGY 12", false},
		{"Ausfall", false},
	}
	for _, tt := range tests {
		if got := isPageFurniture(tt.text); got != tt.want {
			t.Errorf("isPageFurniture(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestJoinDetectionsReadingOrder(t *testing.T) {
	r := New(nil)
	detections := []model.Detection{
		{Text: "Welt", Box: image.Rect(80, 52, 120, 70)},
		{Text: "Hallo", Box: image.Rect(10, 50, 70, 70)},
		{Text: "zweite", Box: image.Rect(10, 110, 70, 130)},
		{Text: "Zeile", Box: image.Rect(80, 112, 120, 130)},
	}
	if got := r.joinDetections(detections); got != "Hallo Welt zweite Zeile" {
		t.Errorf("joinDetections() = %q", got)
	}
}

func TestJoinDetectionsEmpty(t *testing.T) {
	r := New(nil)
	if got := r.joinDetections(nil); got != "" {
		t.Errorf("joinDetections(nil) = %q, want empty", got)
	}
}
