package model

// Action categorizes what a substitution row changes.
type Action string

const (
	ActionCancellation Action = "cancellation"
	ActionReplacement  Action = "replacement"
	ActionRoomChange   Action = "room-change"
	ActionAdd          Action = "add"
	ActionOther        Action = "other"
)

// ChangePair is a before/after transition for one attribute of a
// lesson (subject, room, or teacher). A nil side means that side is
// textually absent in the source cell.
type ChangePair struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// Str is a convenience constructor for optional cell values.
func Str(s string) *string {
	return &s
}

// HasFrom reports whether the pair carries a non-empty before value.
func (p ChangePair) HasFrom() bool {
	return p.From != nil && *p.From != ""
}

// HasTo reports whether the pair carries a non-empty after value.
func (p ChangePair) HasTo() bool {
	return p.To != nil && *p.To != ""
}

// SubstitutionEvent is one fully parsed, classified schedule change for
// one or more classes at one lesson on one date. Events are immutable
// after assembly and appended in row-encounter order.
type SubstitutionEvent struct {
	Classes       []string   `json:"classes"`
	Lesson        int        `json:"lesson"`
	Subject       ChangePair `json:"subject"`
	Room          ChangePair `json:"room"`
	Teacher       ChangePair `json:"teacher"`
	Date          string     `json:"date"`
	Message       string     `json:"message"`
	Action        Action     `json:"action"`
	GuessedAction bool       `json:"guessedAction"`
}
