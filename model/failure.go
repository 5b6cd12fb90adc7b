package model

import "encoding/json"

// FailureKind discriminates the two parsing-failure variants.
type FailureKind string

const (
	FailureTable FailureKind = "table"
	FailureRow   FailureKind = "row"
)

// Failure reasons that are not field names.
const (
	ReasonColumns    = "amount of columns"
	ReasonDate       = "date"
	ReasonUnreadable = "unreadable"
)

// ParsingFailure records one recovered extraction or parsing problem.
// A table failure carries the table index and a reason; a row failure
// additionally carries the row index and the last successfully parsed
// event for diagnostics. Table indices are 1-based, row indices are
// absolute within their table.
type ParsingFailure struct {
	Kind          FailureKind
	TableIndex    int
	RowIndex      int
	Reason        string
	LastParsedRow *SubstitutionEvent
}

// TableFailure creates a whole-table failure record.
func TableFailure(tableIndex int, reason string) ParsingFailure {
	return ParsingFailure{
		Kind:       FailureTable,
		TableIndex: tableIndex,
		Reason:     reason,
	}
}

// RowFailure creates a single-row failure record.
func RowFailure(tableIndex, rowIndex int, reason string, lastParsed *SubstitutionEvent) ParsingFailure {
	return ParsingFailure{
		Kind:          FailureRow,
		TableIndex:    tableIndex,
		RowIndex:      rowIndex,
		Reason:        reason,
		LastParsedRow: lastParsed,
	}
}

// MarshalJSON serializes the failure per variant: table failures omit
// the row fields, row failures include them.
func (f ParsingFailure) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FailureRow:
		return json.Marshal(struct {
			Type          FailureKind        `json:"type"`
			TableIndex    int                `json:"tableIndex"`
			RowIndex      int                `json:"rowIndex"`
			Reason        string             `json:"reason"`
			LastParsedRow *SubstitutionEvent `json:"lastParsedRow"`
		}{f.Kind, f.TableIndex, f.RowIndex, f.Reason, f.LastParsedRow})
	default:
		return json.Marshal(struct {
			Type       FailureKind `json:"type"`
			TableIndex int         `json:"tableIndex"`
			Reason     string      `json:"reason"`
		}{f.Kind, f.TableIndex, f.Reason})
	}
}
