// Package parse turns extracted table rows into substitution events.
// Field parsers convert single cells into typed values, the classifier
// assigns an action category, and the assembler drives both over all
// tables of a document while collecting structured failures.
package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/bszet/subplan/model"
)

var (
	datePattern   = regexp.MustCompile(`\d\d\.\d\d\.\d\d\d\d`)
	classPattern  = regexp.MustCompile(`[A-Za-z]+ ?\d+`)
	lessonPattern = regexp.MustCompile(`(\d)\.`)

	// +NEW(OLD): a stand-in plus the person/room/subject it covers.
	fullChange = regexp.MustCompile(`\+([A-Za-zÄ-ü_\-\s]+)\(([A-Za-zÄ-ü_\-\s]+)\)`)
	// (OLD) alone: only the dropped side is known.
	fromChange = regexp.MustCompile(`\((.+)\)`)

	whitespace = regexp.MustCompile(`\s`)
)

// ParseDate finds a DD.MM.YYYY date anywhere in the cell and returns it
// as ISO YYYY-MM-DD. The second return is false when no date is
// present.
func ParseDate(cell string) (string, bool) {
	m := datePattern.FindString(cell)
	if m == "" {
		return "", false
	}
	parsed, err := time.Parse("02.01.2006", m)
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

// ParseClasses extracts all class tokens (letters optionally followed
// by a space and digits) from the cell, with internal spaces removed.
// Returns false when the cell names no class.
func ParseClasses(cell string) ([]string, bool) {
	flat := strings.ReplaceAll(strings.TrimSpace(cell), "\n", "")
	matches := classPattern.FindAllString(flat, -1)
	if len(matches) == 0 {
		return nil, false
	}
	classes := make([]string, len(matches))
	for i, m := range matches {
		classes[i] = strings.ReplaceAll(m, " ", "")
	}
	return classes, true
}

// ParseLesson finds the first digit immediately followed by a dot.
// Lessons are single-digit enumerations; a bare "10" is rejected rather
// than misread.
func ParseLesson(cell string) (int, bool) {
	m := lessonPattern.FindStringSubmatch(cell)
	if m == nil {
		return 0, false
	}
	return int(m[1][0] - '0'), true
}

// ParseChangePair parses a before/after cell for subject, room, or
// teacher. Three forms, in priority order: "+NEW(OLD)" populates both
// sides, "(OLD)" populates only from, and bare text populates from when
// alwaysFrom is set, otherwise to. A bare subject conventionally means
// the subject taking place (an addition lands in from and is corrected
// by the classifier), while a bare teacher means the stand-in.
// Empty or whitespace-only text is a failure: no change data present.
func ParseChangePair(cell string, alwaysFrom bool) (model.ChangePair, bool) {
	if m := fullChange.FindStringSubmatch(cell); m != nil {
		to := whitespace.ReplaceAllString(m[1], "")
		from := whitespace.ReplaceAllString(m[2], "")
		return model.ChangePair{From: model.Str(from), To: model.Str(to)}, true
	}
	if m := fromChange.FindStringSubmatch(cell); m != nil {
		from := strings.ReplaceAll(strings.TrimSpace(m[1]), "\n", "")
		return model.ChangePair{From: model.Str(from)}, true
	}
	stripped := strings.ReplaceAll(strings.TrimSpace(cell), "\n", "")
	if len(stripped) > 0 {
		if alwaysFrom {
			return model.ChangePair{From: model.Str(stripped)}, true
		}
		return model.ChangePair{To: model.Str(stripped)}, true
	}
	return model.ChangePair{}, false
}
