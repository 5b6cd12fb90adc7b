package parse

import (
	"strings"

	"github.com/bszet/subplan/model"
)

// Result is the outcome of parsing one document's tables: the events
// that assembled cleanly and a structured record of everything that did
// not.
type Result struct {
	Failures []model.ParsingFailure    `json:"failures"`
	Data     []model.SubstitutionEvent `json:"data"`
}

// Tables assembles substitution events from extracted tables, one table
// per plan page. Table indices in failures are 1-based to match the
// page numbering a reader sees; row indices are the absolute row within
// the table.
//
// The plan prints the date once per day, so a table without its own
// date inherits the date of the table before it. Only the first table
// must carry one.
func Tables(tables []*model.Table) *Result {
	result := &Result{
		Failures: []model.ParsingFailure{},
		Data:     []model.SubstitutionEvent{},
	}

	date := ""
	var lastParsed *model.SubstitutionEvent

	for i, table := range tables {
		tableIndex := i + 1
		table.Pad()

		if table.Width() != model.SchemaWidth {
			result.Failures = append(result.Failures, model.TableFailure(tableIndex, model.ReasonColumns))
			continue
		}

		header := table.Cell(0, 0)
		startRow := 1
		if parsed, ok := ParseDate(header); ok {
			date = parsed
			// A date without the column label means the day heading was
			// captured as a row of its own; the real header follows it.
			if !strings.Contains(header, "\n") {
				startRow = 2
			}
		} else if date == "" {
			result.Failures = append(result.Failures, model.TableFailure(tableIndex, model.ReasonDate))
			continue
		}

		for rowIndex := startRow; rowIndex < table.RowCount(); rowIndex++ {
			event, reason := assembleRow(table, rowIndex, date)
			if reason != "" {
				result.Failures = append(result.Failures,
					model.RowFailure(tableIndex, rowIndex, reason, lastParsed))
				continue
			}

			result.Data = append(result.Data, *event)
			lastParsed = event
		}
	}

	return result
}

// assembleRow parses one table row into an event. The columns are
// positional: classes, lesson, subject, room, teacher, message. The
// second return names the field whose cell could not be parsed ("" on
// success); a row that parses field by field but carries no usable
// information fails as "unreadable".
func assembleRow(table *model.Table, rowIndex int, date string) (*model.SubstitutionEvent, string) {
	classes, ok := ParseClasses(table.Cell(rowIndex, 0))
	if !ok {
		return nil, "classes"
	}
	lesson, ok := ParseLesson(table.Cell(rowIndex, 1))
	if !ok {
		return nil, "lesson"
	}

	// Bare subject and room text describes the lesson as held, so it
	// lands on the from side; bare teacher text names the stand-in.
	subject, ok := ParseChangePair(table.Cell(rowIndex, 2), true)
	if !ok {
		return nil, "subject"
	}
	room, ok := ParseChangePair(table.Cell(rowIndex, 3), true)
	if !ok {
		return nil, "room"
	}
	teacher, ok := ParseChangePair(table.Cell(rowIndex, 4), false)
	if !ok {
		return nil, "teacher"
	}

	event := &model.SubstitutionEvent{
		Classes: classes,
		Lesson:  lesson,
		Subject: subject,
		Room:    room,
		Teacher: teacher,
		Date:    date,
		Message: flatten(table.Cell(rowIndex, 5)),
	}

	if !Classify(event) {
		return nil, model.ReasonUnreadable
	}
	return event, ""
}

// flatten removes line breaks from a message cell. Joining without a
// space keeps keywords that OCR or the layout broke across lines
// ("ver\nschoben") matchable.
func flatten(cell string) string {
	return strings.TrimSpace(strings.ReplaceAll(cell, "\n", ""))
}
