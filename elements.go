package formsync

// Basic widget implementations backing WidgetSet. They hold plain fields and
// no rendering state; integrations with a real widget layer implement the
// same interfaces over their own controls.

// ToggleElement is a tri-state toggle control.
type ToggleElement struct {
	id            string
	group         string
	checked       bool
	indeterminate bool
}

// NewToggleElement constructs a toggle for optionID, optionally grouped.
func NewToggleElement(optionID, groupID string) *ToggleElement {
	return &ToggleElement{id: optionID, group: groupID}
}

func (e *ToggleElement) OptionID() string { return e.id }
func (e *ToggleElement) GroupID() string  { return e.group }
func (e *ToggleElement) Kind() Kind       { return KindToggle }

func (e *ToggleElement) Checked() bool { return e.checked }

// SetChecked sets the checked flag and clears indeterminate.
func (e *ToggleElement) SetChecked(checked bool) {
	e.checked = checked
	e.indeterminate = false
}

func (e *ToggleElement) Indeterminate() bool { return e.indeterminate }

func (e *ToggleElement) SetIndeterminate(indeterminate bool) {
	e.indeterminate = indeterminate
	if indeterminate {
		e.checked = false
	}
}

// FieldElement is a numeric or text control with a textual value slot.
type FieldElement struct {
	id    string
	group string
	kind  Kind
	value string
}

// NewNumericElement constructs a numeric field for optionID.
func NewNumericElement(optionID, groupID string) *FieldElement {
	return &FieldElement{id: optionID, group: groupID, kind: KindNumeric}
}

// NewTextElement constructs a text field for optionID.
func NewTextElement(optionID, groupID string) *FieldElement {
	return &FieldElement{id: optionID, group: groupID, kind: KindText}
}

func (e *FieldElement) OptionID() string { return e.id }
func (e *FieldElement) GroupID() string  { return e.group }
func (e *FieldElement) Kind() Kind       { return e.kind }

func (e *FieldElement) Value() string         { return e.value }
func (e *FieldElement) SetValue(value string) { e.value = value }

// ChoiceOption is one selectable child of a ChoiceElement.
type ChoiceOption struct {
	id       string
	value    any
	selected bool
}

// NewChoiceOption constructs a selectable child carrying value.
func NewChoiceOption(optionID string, value any) *ChoiceOption {
	return &ChoiceOption{id: optionID, value: value}
}

func (o *ChoiceOption) OptionID() string          { return o.id }
func (o *ChoiceOption) Value() any                { return o.value }
func (o *ChoiceOption) Selected() bool            { return o.selected }
func (o *ChoiceOption) SetSelected(selected bool) { o.selected = selected }

// ChoiceElement is an exclusive-choice control. Extraction scans its children
// for the selected flag; it keeps no separate selection marker.
type ChoiceElement struct {
	id    string
	group string
	items []*ChoiceOption
}

// NewChoiceElement constructs a choice control over items.
func NewChoiceElement(optionID, groupID string, items ...*ChoiceOption) *ChoiceElement {
	return &ChoiceElement{id: optionID, group: groupID, items: items}
}

func (e *ChoiceElement) OptionID() string { return e.id }
func (e *ChoiceElement) GroupID() string  { return e.group }
func (e *ChoiceElement) Kind() Kind       { return KindChoice }

// Items implements ChoiceAccessor.
func (e *ChoiceElement) Items() []ChoiceItem {
	items := make([]ChoiceItem, 0, len(e.items))
	for _, item := range e.items {
		items = append(items, item)
	}
	return items
}
