package activity

import (
	"testing"
	"time"
)

func TestEventSubject(t *testing.T) {
	cases := []struct {
		name     string
		event    Event
		wantKind string
		wantID   string
	}{
		{
			name:     "group takes precedence",
			event:    Event{Verb: VerbGroupExtracted, Form: "playback", OptionID: "proxy_host", GroupID: "net"},
			wantKind: "option.group",
			wantID:   "net",
		},
		{
			name:     "option",
			event:    Event{Verb: VerbOptionApplied, Form: "playback", OptionID: "volume"},
			wantKind: "option",
			wantID:   "volume",
		},
		{
			name:     "form",
			event:    Event{Verb: VerbOptionsLoaded, Form: "playback"},
			wantKind: "form",
			wantID:   "playback",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, id := tc.event.Subject()
			if kind != tc.wantKind || id != tc.wantID {
				t.Fatalf("expected subject (%s, %s), got (%s, %s)", tc.wantKind, tc.wantID, kind, id)
			}
		})
	}
}

func TestNormalizeTrimsAndStampsTime(t *testing.T) {
	normalized := Event{Verb: " options.saved ", Form: " playback ", GroupID: " net "}.Normalize()
	if normalized.Verb != "options.saved" || normalized.Form != "playback" || normalized.GroupID != "net" {
		t.Fatalf("expected trimmed fields, got %+v", normalized)
	}
	if normalized.OccurredAt.IsZero() {
		t.Fatalf("expected a defaulted timestamp")
	}

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := (Event{OccurredAt: at}).Normalize(); !got.OccurredAt.Equal(at) {
		t.Fatalf("expected explicit timestamp preserved, got %v", got.OccurredAt)
	}
}
