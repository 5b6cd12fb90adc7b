package reconstruct

import "regexp"

var (
	leadingDigit     = regexp.MustCompile(`^\d`)
	leadingOne       = regexp.MustCompile(`^1`)
	trailingI        = regexp.MustCompile(`I$`)
	leadingEight     = regexp.MustCompile(`^8`)
	leadingPlusEight = regexp.MustCompile(`^\+8`)
	openParenEight   = regexp.MustCompile(`\(8`)
	drSeparator      = regexp.MustCompile(`Dr(_|-|\s)`)
	drDot            = regexp.MustCompile(`Dr\.`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
	stdSeparator     = regexp.MustCompile(`Std(_|-)`)
	separatorStd     = regexp.MustCompile(`(-|_)\sStd`)
)

// NormalizeCell corrects systematic OCR misreads in one recognized cell,
// keyed by the column it occupies. Columns are numbered at OCR time:
// cells are discovered in reverse traversal order, so the index counts
// from the right edge of the printed row, modulo the schema width.
func NormalizeCell(text string, column int) string {
	switch column {
	case 4:
		// Lessons are enumerations with a dot; a single digit is
		// expected, never 10.
		if m := leadingDigit.FindString(text); m != "" {
			return m + "."
		}
		return text
	case 3:
		// Confusion between letter I and digit 1: a leading 1 is
		// really I (e.g. IS), a trailing I is really 1 (Gruppe-1).
		// Prefix first, suffix second; the anchors are mutually
		// exclusive so the rules never double-apply.
		rev := leadingOne.ReplaceAllString(text, "I")
		return trailingI.ReplaceAllString(rev, "1")
	case 2:
		// Rooms start with a building letter; OCR reads B as 8.
		rev := leadingEight.ReplaceAllString(text, "B")
		rev = leadingPlusEight.ReplaceAllString(rev, "+B")
		return openParenEight.ReplaceAllString(rev, "(B")
	case 1:
		// Variant spellings of the "Dr" title collapse to "Dr. ".
		rev := drSeparator.ReplaceAllString(text, "Dr.")
		rev = drDot.ReplaceAllString(rev, "Dr. ")
		return repeatedSpace.ReplaceAllString(rev, " ")
	case 0:
		// The "Std" period abbreviation collapses to dotted form.
		rev := stdSeparator.ReplaceAllString(text, "Std.")
		return separatorStd.ReplaceAllString(rev, ". Std")
	default:
		return text
	}
}
