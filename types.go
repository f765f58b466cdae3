package formsync

import "github.com/goliatone/go-formsync/internal/coerce"

// Values is a flat option id -> value map as loaded from (or destined for) a
// persistent store. A group id key maps to a nested Values aggregate. A nil
// value is the tri-state null; a missing key means the option is unset.
type Values map[string]any

// Clone returns a deep copy of the values map. Numbers are normalized to
// float64 on the way through, matching JSON decoding semantics.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	return Values(coerce.Clone(map[string]any(v)))
}

// Kind identifies the read/write strategy bound to a widget.
type Kind int

const (
	// KindToggle is a tri-state checkbox: checked, unchecked, or indeterminate.
	KindToggle Kind = iota + 1
	// KindChoice is an exclusive-choice group with selectable children.
	KindChoice
	// KindNumeric holds a textual value persisted as a number.
	KindNumeric
	// KindText holds a raw textual value.
	KindText
)

// String returns the kind name used in logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindChoice:
		return "choice"
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Widget is an abstract handle to a form control. Implementations declare
// their option id, optional group membership, and kind; per-kind capabilities
// are exposed through the narrower interfaces below.
type Widget interface {
	OptionID() string
	// GroupID returns the id of the option group the widget belongs to, or
	// an empty string when the widget stands alone.
	GroupID() string
	Kind() Kind
}

// ValueAccessor exposes the textual value slot of numeric and text widgets.
type ValueAccessor interface {
	Value() string
	SetValue(string)
}

// ToggleState exposes the tri-state flags of a toggle widget.
type ToggleState interface {
	Checked() bool
	SetChecked(bool)
	Indeterminate() bool
	SetIndeterminate(bool)
}

// ChoiceItem is one selectable child of an exclusive-choice widget.
type ChoiceItem interface {
	OptionID() string
	Value() any
	Selected() bool
	SetSelected(bool)
}

// ChoiceAccessor enumerates the selectable children of a choice widget.
type ChoiceAccessor interface {
	Items() []ChoiceItem
}

// SelectedGetter is an optional capability for choice widgets that maintain
// an explicit selection marker. When implemented, the marker is authoritative
// and extraction will not fall back to scanning children.
type SelectedGetter interface {
	Selected() (ChoiceItem, bool)
}

// WidgetScope answers the "all widgets declaring group = X" query over the
// current scope. The widget layer supplies the implementation; WidgetSet is
// an in-memory version for tests and examples.
type WidgetScope interface {
	WidgetsInGroup(groupID string) []Widget
}
