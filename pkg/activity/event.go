package activity

import (
	"strings"
	"time"
)

// Verbs emitted over the sync lifecycle.
const (
	VerbOptionsLoaded  = "options.loaded"
	VerbOptionsSaved   = "options.saved"
	VerbOptionApplied  = "option.applied"
	VerbGroupExtracted = "group.extracted"
)

// Event describes one sync occurrence: which form and profile it belongs to,
// the option or group it touched, and the value transition when one happened.
type Event struct {
	Verb       string
	Form       string
	Profile    string
	OptionID   string
	GroupID    string
	SnapshotID string
	ActorID    string
	Channel    string
	OldValue   any
	NewValue   any
	OccurredAt time.Time
}

// Normalize trims identifier fields and ensures a timestamp is present.
func (e Event) Normalize() Event {
	e.Verb = strings.TrimSpace(e.Verb)
	e.Form = strings.TrimSpace(e.Form)
	e.Profile = strings.TrimSpace(e.Profile)
	e.OptionID = strings.TrimSpace(e.OptionID)
	e.GroupID = strings.TrimSpace(e.GroupID)
	e.SnapshotID = strings.TrimSpace(e.SnapshotID)
	e.ActorID = strings.TrimSpace(e.ActorID)
	e.Channel = strings.TrimSpace(e.Channel)
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	return e
}

// Subject identifies what the event is about: the group when one is set,
// else the option, else the form itself.
func (e Event) Subject() (kind, id string) {
	switch {
	case e.GroupID != "":
		return "option.group", e.GroupID
	case e.OptionID != "":
		return "option", e.OptionID
	default:
		return "form", e.Form
	}
}

func (e Event) complete() bool {
	_, id := e.Subject()
	return e.Verb != "" && id != ""
}
