// Package segment splits a multi-day plan into per-day documents. The
// plan prints the date once per day and continues a long day onto
// dateless follow-up pages, so consecutive pages group by the last date
// seen.
package segment

import (
	"errors"
	"fmt"

	"github.com/bszet/subplan/model"
	"github.com/bszet/subplan/parse"
	"github.com/bszet/subplan/pdfdoc"
)

// ErrNoDate reports that the first page carries no recognizable date,
// which makes every page's day assignment ambiguous.
var ErrNoDate = errors.New("first page has no date")

// Day is one day's page range within the source document. Pages are
// 1-based and inclusive.
type Day struct {
	Date     string
	FromPage int
	ToPage   int
}

// Days groups the document's pages into days, using the date parsed
// from each page's table header. Table i describes page i+1.
func Days(tables []*model.Table) ([]Day, error) {
	var days []Day
	for i, table := range tables {
		date, ok := headerDate(table)
		if !ok {
			if len(days) == 0 {
				return nil, ErrNoDate
			}
			days[len(days)-1].ToPage = i + 1
			continue
		}
		if len(days) > 0 && days[len(days)-1].Date == date {
			days[len(days)-1].ToPage = i + 1
			continue
		}
		days = append(days, Day{Date: date, FromPage: i + 1, ToPage: i + 1})
	}
	return days, nil
}

func headerDate(table *model.Table) (string, bool) {
	if table == nil {
		return "", false
	}
	return parse.ParseDate(table.Cell(0, 0))
}

// DayPlan is one day's slice of the plan: its date and the standalone
// PDF containing exactly that day's pages.
type DayPlan struct {
	Day
	PDF []byte
}

// Iterator yields per-day documents one at a time. Slicing happens
// lazily on each Next call, so consumers that stop early never pay for
// the remaining days.
type Iterator struct {
	doc  []byte
	days []Day
	next int
}

// NewIterator prepares day-wise iteration over the document.
func NewIterator(doc []byte, tables []*model.Table) (*Iterator, error) {
	days, err := Days(tables)
	if err != nil {
		return nil, err
	}
	return &Iterator{doc: doc, days: days}, nil
}

// Len returns the number of days the iterator will yield.
func (it *Iterator) Len() int {
	return len(it.days)
}

// Next returns the next day's plan, or nil when all days have been
// yielded.
func (it *Iterator) Next() (*DayPlan, error) {
	if it.next >= len(it.days) {
		return nil, nil
	}
	day := it.days[it.next]
	it.next++

	pdf, err := pdfdoc.PageRange(it.doc, day.FromPage, day.ToPage)
	if err != nil {
		return nil, fmt.Errorf("slicing day %s: %w", day.Date, err)
	}
	return &DayPlan{Day: day, PDF: pdf}, nil
}
