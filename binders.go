package formsync

import (
	"fmt"

	"github.com/goliatone/go-formsync/internal/coerce"
)

// binder is the per-kind read/write strategy. apply is silent: unresolved or
// mismatched values leave the widget untouched. extract raises synchronously.
type binder interface {
	apply(w Widget, value any)
	extract(w Widget) (id string, value any, err error)
}

func binderFor(k Kind) (binder, error) {
	switch k {
	case KindToggle:
		return toggleBinder{}, nil
	case KindChoice:
		return choiceBinder{}, nil
	case KindNumeric:
		return numericBinder{}, nil
	case KindText:
		return textBinder{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
}

type toggleBinder struct{}

func (toggleBinder) apply(w Widget, value any) {
	toggle, ok := w.(ToggleState)
	if !ok {
		return
	}
	if value == nil {
		toggle.SetIndeterminate(true)
		return
	}
	toggle.SetIndeterminate(false)
	// Checked only for an exact boolean true; anything else unchecks.
	checked, _ := value.(bool)
	toggle.SetChecked(checked)
}

func (toggleBinder) extract(w Widget) (string, any, error) {
	toggle, ok := w.(ToggleState)
	if !ok {
		return "", nil, missingCapability(w, "toggle state")
	}
	if toggle.Indeterminate() {
		return w.OptionID(), nil, nil
	}
	return w.OptionID(), toggle.Checked(), nil
}

type choiceBinder struct{}

func (choiceBinder) apply(w Widget, value any) {
	choice, ok := w.(ChoiceAccessor)
	if !ok {
		return
	}
	// Selecting by equality keeps the choice exclusive; no match leaves
	// nothing selected.
	for _, item := range choice.Items() {
		item.SetSelected(coerce.Equal(item.Value(), value))
	}
}

func (choiceBinder) extract(w Widget) (string, any, error) {
	if getter, ok := w.(SelectedGetter); ok {
		item, ok := getter.Selected()
		if !ok {
			return "", nil, &SelectionError{OptionID: w.OptionID(), GroupID: w.GroupID()}
		}
		return item.OptionID(), item.Value(), nil
	}

	choice, ok := w.(ChoiceAccessor)
	if !ok {
		return "", nil, missingCapability(w, "choice items")
	}
	for _, item := range choice.Items() {
		if item.Selected() {
			return item.OptionID(), item.Value(), nil
		}
	}
	return "", nil, &SelectionError{OptionID: w.OptionID(), GroupID: w.GroupID()}
}

type numericBinder struct{}

func (numericBinder) apply(w Widget, value any) {
	accessor, ok := w.(ValueAccessor)
	if !ok {
		return
	}
	accessor.SetValue(coerce.String(value))
}

func (numericBinder) extract(w Widget) (string, any, error) {
	accessor, ok := w.(ValueAccessor)
	if !ok {
		return "", nil, missingCapability(w, "value slot")
	}
	number, err := coerce.Number(accessor.Value())
	if err != nil {
		return "", nil, fmt.Errorf("formsync: option %q: %w", w.OptionID(), err)
	}
	return w.OptionID(), number, nil
}

type textBinder struct{}

func (textBinder) apply(w Widget, value any) {
	accessor, ok := w.(ValueAccessor)
	if !ok {
		return
	}
	accessor.SetValue(coerce.String(value))
}

func (textBinder) extract(w Widget) (string, any, error) {
	accessor, ok := w.(ValueAccessor)
	if !ok {
		return "", nil, missingCapability(w, "value slot")
	}
	return w.OptionID(), accessor.Value(), nil
}
