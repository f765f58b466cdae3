package formsync

import (
	"errors"
	"reflect"
	"testing"
)

type bareWidget struct {
	id    string
	group string
	kind  Kind
}

func (w bareWidget) OptionID() string { return w.id }
func (w bareWidget) GroupID() string  { return w.group }
func (w bareWidget) Kind() Kind       { return w.kind }

// markerChoice maintains an explicit selection marker, covering the
// SelectedGetter shortcut.
type markerChoice struct {
	id       string
	group    string
	items    []*ChoiceOption
	selected *ChoiceOption
}

func (w *markerChoice) OptionID() string { return w.id }
func (w *markerChoice) GroupID() string  { return w.group }
func (w *markerChoice) Kind() Kind       { return KindChoice }

func (w *markerChoice) Items() []ChoiceItem {
	items := make([]ChoiceItem, 0, len(w.items))
	for _, item := range w.items {
		items = append(items, item)
	}
	return items
}

func (w *markerChoice) Selected() (ChoiceItem, bool) {
	if w.selected == nil {
		return nil, false
	}
	return w.selected, true
}

func newSessionWithDefaults(t *testing.T, provider DefaultProvider, opts ...SessionOption) *Session {
	t.Helper()
	opts = append(opts, WithDefaultProvider(provider))
	return NewSession(opts...)
}

func TestReadyRequiresProvider(t *testing.T) {
	session := NewSession()
	if err := session.Ready(); !errors.Is(err, ErrProviderNotSet) {
		t.Fatalf("expected ErrProviderNotSet, got %v", err)
	}

	toggle := NewToggleElement("dark", "")
	if err := session.Apply("dark", "", toggle, Values{"dark": true}); !errors.Is(err, ErrProviderNotSet) {
		t.Fatalf("expected Apply to fail before provider registration, got %v", err)
	}

	session.SetDefaultProvider(nil)
	if err := session.Ready(); err != nil {
		t.Fatalf("expected explicit nil provider to satisfy readiness, got %v", err)
	}
}

func TestApplyMissingValueConsultsProvider(t *testing.T) {
	session := newSessionWithDefaults(t, StaticProvider{"volume": 7.0})

	volume := NewNumericElement("volume", "")
	if err := session.Apply("volume", "", volume, Values{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if volume.Value() != "7" {
		t.Fatalf("expected provider default in widget, got %q", volume.Value())
	}
}

func TestApplyMissingValueNoDefaultIsSilent(t *testing.T) {
	session := newSessionWithDefaults(t, DefaultProviderFunc(func(string) (any, bool) {
		return nil, false
	}))

	field := NewTextElement("name", "")
	field.SetValue("markup default")
	if err := session.Apply("name", "", field, Values{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if field.Value() != "markup default" {
		t.Fatalf("expected widget untouched, got %q", field.Value())
	}
}

func TestApplyDisabledProviderIsSilent(t *testing.T) {
	session := newSessionWithDefaults(t, nil)

	field := NewTextElement("name", "")
	field.SetValue("markup default")
	if err := session.Apply("name", "", field, Values{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if field.Value() != "markup default" {
		t.Fatalf("expected widget untouched with defaults disabled, got %q", field.Value())
	}
}

func TestApplyExtractRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		widget Widget
		loaded Values
		want   any
	}{
		{
			name:   "toggle checked",
			widget: NewToggleElement("dark", ""),
			loaded: Values{"dark": true},
			want:   true,
		},
		{
			name:   "toggle unchecked",
			widget: NewToggleElement("dark", ""),
			loaded: Values{"dark": false},
			want:   false,
		},
		{
			name:   "toggle null",
			widget: NewToggleElement("dark", ""),
			loaded: Values{"dark": nil},
			want:   nil,
		},
		{
			name:   "numeric",
			widget: NewNumericElement("volume", ""),
			loaded: Values{"volume": float64(42)},
			want:   float64(42),
		},
		{
			name:   "text",
			widget: NewTextElement("name", ""),
			loaded: Values{"name": "ada"},
			want:   "ada",
		},
		{
			name: "choice",
			widget: NewChoiceElement("quality", "",
				NewChoiceOption("quality.low", "low"),
				NewChoiceOption("quality.high", "high"),
			),
			loaded: Values{"quality": "high"},
			want:   "high",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := newSessionWithDefaults(t, nil)
			optionID := tc.widget.OptionID()
			if err := session.Apply(optionID, "", tc.widget, tc.loaded); err != nil {
				t.Fatalf("apply: %v", err)
			}
			_, got, err := session.Extract(tc.widget, true)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("round trip mismatch: got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestToggleIndeterminateRoundTrip(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	toggle := NewToggleElement("dark", "")

	if err := session.Apply("dark", "", toggle, Values{"dark": nil}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !toggle.Indeterminate() {
		t.Fatalf("expected indeterminate after applying null")
	}

	_, value, err := session.Extract(toggle, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil from indeterminate toggle, got %#v", value)
	}
}

func TestChoiceApplyNoMatchLeavesNothingSelected(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	choice := NewChoiceElement("quality", "",
		NewChoiceOption("quality.low", "low"),
		NewChoiceOption("quality.high", "high"),
	)

	if err := session.Apply("quality", "", choice, Values{"quality": "ultra"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	for _, item := range choice.Items() {
		if item.Selected() {
			t.Fatalf("expected no selection for unmatched value, %q is selected", item.OptionID())
		}
	}
}

func TestChoiceExtractWithoutSelectionFails(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	choice := NewChoiceElement("quality", "",
		NewChoiceOption("quality.low", "low"),
		NewChoiceOption("quality.high", "high"),
	)

	_, _, err := session.Extract(choice, true)
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	var selErr *SelectionError
	if !errors.As(err, &selErr) || selErr.OptionID != "quality" {
		t.Fatalf("expected SelectionError for %q, got %v", "quality", err)
	}
}

func TestChoiceExtractReturnsChildPair(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	choice := NewChoiceElement("quality", "",
		NewChoiceOption("quality.low", "low"),
		NewChoiceOption("quality.high", "high"),
	)

	if err := session.Apply("quality", "", choice, Values{"quality": "low"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	id, value, err := session.Extract(choice, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id != "quality.low" || value != "low" {
		t.Fatalf("expected child pair (quality.low, low), got (%s, %#v)", id, value)
	}
}

func TestChoiceSelectedMarkerIsAuthoritative(t *testing.T) {
	high := NewChoiceOption("quality.high", "high")
	choice := &markerChoice{
		id:    "quality",
		items: []*ChoiceOption{NewChoiceOption("quality.low", "low"), high},
	}

	session := newSessionWithDefaults(t, nil)

	// Marker empty: extraction fails even though items could be scanned.
	high.SetSelected(true)
	if _, _, err := session.Extract(choice, true); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected marker to be authoritative, got %v", err)
	}

	choice.selected = high
	id, value, err := session.Extract(choice, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id != "quality.high" || value != "high" {
		t.Fatalf("expected marker pair (quality.high, high), got (%s, %#v)", id, value)
	}
}

func TestNumericExtractParsesNumber(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	volume := NewNumericElement("volume", "")
	volume.SetValue("42")

	_, value, err := session.Extract(volume, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if value != float64(42) {
		t.Fatalf("expected float64(42), got %#v", value)
	}
}

func TestNumericExtractRejectsGarbage(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	volume := NewNumericElement("volume", "")
	volume.SetValue("not a number")

	if _, _, err := session.Extract(volume, true); err == nil {
		t.Fatalf("expected parse error for non-numeric value")
	}
}

func TestGroupRoundTripPreservesUntouchedSiblings(t *testing.T) {
	a := NewNumericElement("a", "net")
	scope := NewWidgetSet(a)
	session := newSessionWithDefaults(t, nil, WithWidgetScope(scope))

	loaded := Values{"net": Values{"a": float64(1), "b": "x"}}
	if err := session.Apply("a", "net", a, loaded); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Value() != "1" {
		t.Fatalf("expected group member applied, got %q", a.Value())
	}

	id, value, err := session.Extract(a, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id != "net" {
		t.Fatalf("expected group id, got %q", id)
	}
	aggregate, ok := value.(Values)
	if !ok {
		t.Fatalf("expected Values aggregate, got %T", value)
	}
	want := Values{"a": float64(1), "b": "x"}
	if !reflect.DeepEqual(aggregate, want) {
		t.Fatalf("expected sibling preserved through cache: got %#v want %#v", aggregate, want)
	}
}

func TestGroupExtractScansWholeScope(t *testing.T) {
	a := NewNumericElement("a", "net")
	b := NewTextElement("b", "net")
	other := NewTextElement("c", "other")
	scope := NewWidgetSet(a, b, other)
	session := newSessionWithDefaults(t, nil, WithWidgetScope(scope))

	loaded := Values{"net": Values{"a": float64(1), "b": "x"}}
	if err := session.Apply("a", "net", a, loaded); err != nil {
		t.Fatalf("apply a: %v", err)
	}
	if err := session.Apply("b", "net", b, loaded); err != nil {
		t.Fatalf("apply b: %v", err)
	}

	// Live edit on one member; extraction via the other still sees it.
	b.SetValue("y")
	_, value, err := session.Extract(a, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := Values{"a": float64(1), "b": "y"}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("expected live rescan of the whole group: got %#v want %#v", value, want)
	}
}

func TestResetDropsRememberedAggregates(t *testing.T) {
	a := NewNumericElement("a", "net")
	scope := NewWidgetSet(a)
	session := newSessionWithDefaults(t, nil, WithWidgetScope(scope))

	loaded := Values{"net": Values{"a": float64(1), "b": "x"}}
	if err := session.Apply("a", "net", a, loaded); err != nil {
		t.Fatalf("apply: %v", err)
	}

	session.Reset()

	_, value, err := session.Extract(a, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := Values{"a": float64(1)}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("expected only live state after reset: got %#v want %#v", value, want)
	}
}

func TestGroupDefaultSeedsRememberedAggregate(t *testing.T) {
	a := NewNumericElement("a", "net")
	scope := NewWidgetSet(a)
	provider := StaticProvider{"net": Values{"a": float64(2), "b": "y"}}
	session := newSessionWithDefaults(t, provider, WithWidgetScope(scope))

	if err := session.Apply("a", "net", a, Values{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Value() != "2" {
		t.Fatalf("expected group default applied, got %q", a.Value())
	}

	_, value, err := session.Extract(a, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := Values{"a": float64(2), "b": "y"}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("expected default aggregate to seed cache: got %#v want %#v", value, want)
	}
}

func TestZeroValueSessionExtractsGroups(t *testing.T) {
	var session Session
	a := NewNumericElement("a", "net")
	a.SetValue("3")

	_, value, err := session.Extract(a, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := Values{"a": float64(3)}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("expected group extraction on a zero-value session, got %#v", value)
	}
}

func TestExtractScalarWhenGroupModeDisabled(t *testing.T) {
	a := NewNumericElement("a", "net")
	scope := NewWidgetSet(a)
	session := newSessionWithDefaults(t, nil, WithWidgetScope(scope))
	a.SetValue("5")

	id, value, err := session.Extract(a, false)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id != "a" || value != float64(5) {
		t.Fatalf("expected scalar extraction, got (%s, %#v)", id, value)
	}
}

func TestExtractUnknownKindFails(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	if _, _, err := session.Extract(bareWidget{id: "x", kind: Kind(99)}, true); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestApplyMissingCapabilityIsSilent(t *testing.T) {
	session := newSessionWithDefaults(t, nil)
	w := bareWidget{id: "dark", kind: KindToggle}
	if err := session.Apply("dark", "", w, Values{"dark": true}); err != nil {
		t.Fatalf("expected silent apply on capability mismatch, got %v", err)
	}

	if _, _, err := session.Extract(w, true); err == nil {
		t.Fatalf("expected extraction to fail on capability mismatch")
	}
}

func TestOptionIDReadsDeclaredID(t *testing.T) {
	session := NewSession()
	if got := session.OptionID(NewTextElement("name", "")); got != "name" {
		t.Fatalf("expected declared id, got %q", got)
	}
	if got := session.OptionID(nil); got != "" {
		t.Fatalf("expected empty id for nil widget, got %q", got)
	}
}

func TestSessionLogsApplyAndExtract(t *testing.T) {
	var events []SyncLogEvent
	logger := SyncLoggerFunc(func(event SyncLogEvent) {
		events = append(events, event)
	})
	session := newSessionWithDefaults(t, nil, WithLogger(logger))

	field := NewTextElement("name", "")
	if err := session.Apply("name", "", field, Values{"name": "ada"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, _, err := session.Extract(field, true); err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 log events, got %d", len(events))
	}
	if events[0].Op != "apply" || events[0].OptionID != "name" {
		t.Fatalf("unexpected apply event: %+v", events[0])
	}
	if events[1].Op != "extract" || events[1].Kind != KindText {
		t.Fatalf("unexpected extract event: %+v", events[1])
	}
}
