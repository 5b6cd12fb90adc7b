// Package cover builds the branded cover page that precedes rendered
// plan images.
package cover

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"
)

// Template colors of the plan.
var (
	orange = [3]int{238, 104, 35}
	grey   = [3]int{130, 129, 125}
)

// Sheet produces a one-page landscape cover PDF: the plan title above
// an orange divider line, and a grey caption noting when the rendering
// was generated.
func Sheet(title string, generated time.Time) ([]byte, error) {
	doc := fpdf.New("L", "pt", "A4", "")
	doc.AddPage()
	pageW, pageH := doc.GetPageSize()

	doc.SetFont("Helvetica", "B", 48)
	doc.SetTextColor(0, 0, 0)
	doc.SetXY(0, pageH/2-90)
	doc.CellFormat(pageW, 60, title, "", 1, "C", false, 0, "")

	doc.SetDrawColor(orange[0], orange[1], orange[2])
	doc.SetLineWidth(4)
	doc.Line(pageW/4, pageH/2, 3*pageW/4, pageH/2)

	doc.SetFont("Helvetica", "", 16)
	doc.SetTextColor(grey[0], grey[1], grey[2])
	doc.SetXY(0, pageH/2+30)
	caption := fmt.Sprintf("Stand: %s", generated.Format("02.01.2006 15:04"))
	doc.CellFormat(pageW, 24, caption, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering cover sheet: %w", err)
	}
	return buf.Bytes(), nil
}
