// Package reconstruct rebuilds a substitution table from a page that
// was rendered as a raster image and carries no text layer. Cell-shaped
// blobs are detected as connected components, OCR-ed individually, and
// regrouped into rows by their pixel-aligned top coordinates.
package reconstruct

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/bszet/subplan/imgproc"
	"github.com/bszet/subplan/model"
)

// Detector is the injected text/region detection capability. One
// detector instance is constructed at process start and reused across
// calls; implementations serialize access internally.
type Detector interface {
	Detect(img image.Image) ([]model.Detection, error)
}

// Config holds the empirically tuned reconstruction parameters.
type Config struct {
	// Cell blobs must have a height strictly inside this band;
	// anything else is noise or a full-width separator rule.
	MinCellHeight int
	MaxCellHeight int

	// Padding applied to the left and top of each kept box to recover
	// text clipped by the dilation boundary.
	CellPadding int

	// Threshold separating dark print from the light page during blob
	// detection, and the binarization cutoff used per cell.
	PageThreshold uint8
	CellThreshold uint8

	// Dilation kernel merging glyph strokes into one blob per cell.
	DilateKernel int

	// Per-cell OCR preprocessing: upscale factor before inversion and
	// blurring, blur window, and the final downscale factor handed to
	// the detector.
	UpscaleFactor int
	OutputFactor  int
	BlurWindow    int

	// Vertical tolerance when regrouping detections into text lines.
	LineTolerance int

	// Date scan region: trimmed on the right to exclude the decorative
	// area, and stopped this far above the table's occupied rectangle.
	DateRightTrim int
	DateTopGap    int
}

// DefaultConfig returns the parameters tuned for 200dpi renderings of
// the substitution-plan template.
func DefaultConfig() Config {
	return Config{
		MinCellHeight: 60,
		MaxCellHeight: 150,
		CellPadding:   2,
		PageThreshold: 190,
		CellThreshold: 150,
		DilateKernel:  8,
		UpscaleFactor: 10,
		OutputFactor:  2,
		BlurWindow:    5,
		LineTolerance: 15,
		DateRightTrim: 300,
		DateTopGap:    60,
	}
}

// headerArtifacts are page-furniture strings that must not survive into
// the table. A recognized cell is dropped when its lowercased text is a
// substring of any of these.
var headerArtifacts = []string{
	"bszet",
	"vertretungsplan",
	"bgy",
	"/",
	"|",
	"i",
	"[",
	"dubas",
}

// Reconstructor converts a rasterized page into a 6-column table.
type Reconstructor struct {
	det    Detector
	config Config
}

// New creates a reconstructor around the given detector with default
// configuration.
func New(det Detector) *Reconstructor {
	return &Reconstructor{det: det, config: DefaultConfig()}
}

// Configure sets the reconstruction parameters.
func (r *Reconstructor) Configure(config Config) {
	r.config = config
}

// Reconstruct detects cell blobs in the page image, OCRs each one, and
// groups them into rows. Row 0 of the result is a synthesized header
// carrying the OCR-recovered date, so image-sourced tables look exactly
// like text-sourced ones to the parsers downstream.
func (r *Reconstructor) Reconstruct(img image.Image) (*model.Table, error) {
	if r.det == nil {
		return nil, fmt.Errorf("no OCR detector configured")
	}

	gray := imgproc.Grayscale(img)
	bin := imgproc.ThresholdInv(gray, r.config.PageThreshold)
	dilated := imgproc.Dilate(bin, r.config.DilateKernel)
	boxes := imgproc.ComponentBoxes(dilated)

	var rows [][]string
	var row []string
	yBefore := 0

	// Occupied rectangle of the table, tracked over non-empty cells.
	left, top := math.MaxInt32, math.MaxInt32
	right, bottom := 0, 0
	dateTop := 0

	for _, box := range boxes {
		h := box.Dy()
		if h <= r.config.MinCellHeight || h >= r.config.MaxCellHeight {
			continue
		}

		padded := image.Rect(
			box.Min.X-r.config.CellPadding,
			box.Min.Y-r.config.CellPadding,
			box.Max.X,
			box.Max.Y,
		).Intersect(gray.Bounds())

		text, err := r.readRegion(gray, padded)
		if err != nil {
			return nil, fmt.Errorf("cell OCR failed: %w", err)
		}
		text = NormalizeCell(text, len(row)%model.SchemaWidth)

		if isPageFurniture(text) {
			dateTop = padded.Max.Y
			continue
		}

		if yBefore == padded.Min.Y || yBefore == 0 {
			row = append([]string{text}, row...)
		} else {
			rows = append([][]string{row}, rows...)
			row = []string{text}
		}
		yBefore = padded.Min.Y

		// Empty cells must not affect the table's occupied rectangle.
		if text != "" {
			if padded.Min.X < left {
				left = padded.Min.X
			}
			if padded.Min.Y < top {
				top = padded.Min.Y
			}
			if padded.Max.X > right {
				right = padded.Max.X
			}
			if padded.Max.Y > bottom {
				bottom = padded.Max.Y
			}
		}
	}
	rows = append([][]string{row}, rows...)

	date, err := r.readDate(gray, left, top, right, dateTop)
	if err != nil {
		return nil, err
	}

	// The synthesized header mirrors the text-layer extraction, which
	// merges the date into the first column label.
	header := []string{
		date + "\nKlasse",
		"Stunde",
		"Fach",
		"Raum",
		"Lehrkraft: +Vertretung / (fehlt)",
		"Mitteilung",
	}
	rows = append([][]string{header}, rows...)

	table := model.NewTable(rows)
	table.Pad()
	return table, nil
}

// readDate OCRs the region above the table's occupied rectangle where
// the day heading is printed. The table heading itself is invisible to
// blob detection because of its colored background, so the region is
// bounded by the last filtered header artifact instead.
func (r *Reconstructor) readDate(gray *image.Gray, left, top, right, dateTop int) (string, error) {
	region := image.Rect(left, dateTop, right-r.config.DateRightTrim, top-r.config.DateTopGap).
		Intersect(gray.Bounds())
	if region.Empty() {
		return "", nil
	}
	text, err := r.readRegion(gray, region)
	if err != nil {
		return "", fmt.Errorf("date OCR failed: %w", err)
	}
	return text, nil
}

// readRegion crops one region, preprocesses it for the detector
// (binarize, upscale, invert, blur, downscale), and joins the resulting
// detections into reading order. Absence of any detection is an empty
// cell, not an error.
func (r *Reconstructor) readRegion(gray *image.Gray, region image.Rectangle) (string, error) {
	if region.Empty() {
		return "", nil
	}
	cell := imgproc.Crop(gray, region)
	w, h := cell.Bounds().Dx(), cell.Bounds().Dy()

	bin := imgproc.Threshold(cell, r.config.CellThreshold)
	big := imgproc.Scale(bin, w*r.config.UpscaleFactor, h*r.config.UpscaleFactor)
	blurred := imgproc.BoxBlur(imgproc.Invert(big), r.config.BlurWindow)
	prepared := imgproc.Scale(blurred, w*r.config.OutputFactor, h*r.config.OutputFactor)

	detections, err := r.det.Detect(prepared)
	if err != nil {
		return "", err
	}
	return r.joinDetections(detections), nil
}

// joinDetections orders recognized regions into reading order: sorted
// by x, grouped into text lines by top-y proximity, lines emitted top
// to bottom.
func (r *Reconstructor) joinDetections(detections []model.Detection) string {
	if len(detections) == 0 {
		return ""
	}

	sorted := make([]model.Detection, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Min.X < sorted[j].Box.Min.X
	})

	minY := sorted[0].Box.Min.Y
	for _, d := range sorted[1:] {
		if d.Box.Min.Y < minY {
			minY = d.Box.Min.Y
		}
	}

	lines := []int{minY}
	for _, d := range sorted {
		known := false
		for _, line := range lines {
			if abs(d.Box.Min.Y-line) <= r.config.LineTolerance {
				known = true
				break
			}
		}
		if !known {
			lines = append(lines, d.Box.Min.Y)
		}
	}
	sort.Ints(lines)

	buckets := make([][]string, len(lines))
	for _, d := range sorted {
		for i, line := range lines {
			if abs(d.Box.Min.Y-line) <= r.config.LineTolerance {
				buckets[i] = append(buckets[i], d.Text)
				break
			}
		}
	}

	var parts []string
	for _, bucket := range buckets {
		parts = append(parts, bucket...)
	}
	return strings.Join(parts, " ")
}

// isPageFurniture reports whether a recognized cell is a known
// header/banner artifact rather than table data.
func isPageFurniture(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, artifact := range headerArtifacts {
		if strings.Contains(artifact, lower) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
