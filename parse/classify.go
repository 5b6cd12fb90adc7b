package parse

import (
	"strings"

	"github.com/bszet/subplan/model"
)

// Action keywords looked up in the message cell, checked in this order.
// A replacement keyword wins over a cancellation keyword appearing in
// the same message ("verschoben auf ... statt ..." is a swap, not a
// dropped lesson).
var (
	replacementKeywords  = []string{"statt", "Stundentausch", "vorgezogen"}
	cancellationKeywords = []string{"Ausfall", "verschoben"}
	roomChangeKeywords   = []string{"Raumänderung"}
)

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// Classify assigns the event's action category and repairs the field
// pairs that depend on it. The message keywords are authoritative; when
// the message names no known action, the teacher pair shape is used as
// a guess and the event is flagged accordingly.
//
// The return is false for the one unrecoverable shape: a guessed room
// change without a target room, which means the row carried no usable
// information at all.
func Classify(event *model.SubstitutionEvent) bool {
	event.Action, event.GuessedAction = classifyMessage(event)

	// A replacement row writes the continuing subject and room as bare
	// text, which the field parser stores on the from side. Move them
	// over: in a replacement the new state is what matters.
	if event.Action == model.ActionReplacement {
		if !event.Subject.HasTo() {
			event.Subject.To, event.Subject.From = event.Subject.From, nil
		}
		if !event.Room.HasTo() {
			event.Room.To, event.Room.From = event.Room.From, nil
		}

		// No old subject: either the lesson replaces a named dropped
		// teacher (subject unchanged), or nothing is replaced and the
		// lesson is an addition to the schedule.
		if !event.Subject.HasFrom() {
			if event.Teacher.HasFrom() {
				event.Subject.From = event.Subject.To
			} else {
				event.Action = model.ActionAdd
			}
		}
	}

	if event.GuessedAction && event.Action == model.ActionRoomChange && !event.Room.HasTo() {
		return false
	}
	return true
}

func classifyMessage(event *model.SubstitutionEvent) (model.Action, bool) {
	message := event.Message
	if strings.TrimSpace(message) != "" {
		switch {
		case containsAny(message, replacementKeywords):
			return model.ActionReplacement, false
		case containsAny(message, cancellationKeywords):
			return model.ActionCancellation, false
		case containsAny(message, roomChangeKeywords):
			return model.ActionRoomChange, false
		}
		return model.ActionOther, false
	}

	// No message: guess from which side of the teacher pair is filled.
	// A stand-in plus a dropped teacher is a replacement, only a dropped
	// teacher is a cancellation, only a stand-in means the lesson moves
	// to wherever the stand-in teaches.
	switch {
	case event.Teacher.HasFrom() && event.Teacher.HasTo():
		return model.ActionReplacement, true
	case event.Teacher.HasFrom():
		return model.ActionCancellation, true
	case event.Teacher.HasTo():
		return model.ActionRoomChange, true
	}
	return model.ActionOther, true
}
