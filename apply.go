package formsync

import (
	"time"

	"github.com/goliatone/go-formsync/internal/coerce"
)

// Apply writes the stored value for optionID into w. groupID is empty for
// standalone options. loaded is the currently loaded snapshot, possibly empty
// or partial.
//
// When neither the option id nor the group id has an entry in loaded, the
// default provider is consulted; if it yields no default the widget is left
// untouched. That silent skip is deliberate, not an error: markup-declared
// defaults stay in effect. Unresolved or mismatched values never raise; the
// only error Apply returns is ErrProviderNotSet.
func (s *Session) Apply(optionID, groupID string, w Widget, loaded Values) error {
	start := time.Now()
	err := s.apply(optionID, groupID, w, loaded)
	s.logger().LogSync(SyncLogEvent{
		Op:       opApply,
		OptionID: optionID,
		GroupID:  groupID,
		Kind:     widgetKind(w),
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}

func (s *Session) apply(optionID, groupID string, w Widget, loaded Values) error {
	if err := s.Ready(); err != nil {
		return err
	}
	if w == nil {
		return nil
	}

	value, ok := s.resolve(optionID, groupID, loaded)
	if !ok {
		return nil
	}

	b, err := binderFor(w.Kind())
	if err != nil {
		// Unknown kinds fall under the same silent policy as mismatched
		// values; the widget keeps its markup state.
		return nil
	}
	b.apply(w, value)
	return nil
}

// resolve locates the stored or default value for the option. The provider
// is consulted only when neither the option id nor the group id exists as a
// key in the loaded map; grouped lookups go through the group aggregate,
// which is snapshotted into the remembered table on the group's first touch
// this cycle.
func (s *Session) resolve(optionID, groupID string, loaded Values) (any, bool) {
	if groupID == "" {
		if value, ok := loaded[optionID]; ok {
			return value, true
		}
		return s.defaultFor(optionID)
	}

	raw, hasGroup := loaded[groupID]
	if !hasGroup {
		if _, hasOption := loaded[optionID]; hasOption {
			// The option id exists as a top-level key but the widget
			// declared a group: the grouped lookup finds nothing and the
			// provider is not consulted.
			return nil, false
		}
		var ok bool
		raw, ok = s.defaultFor(groupID)
		if !ok {
			return nil, false
		}
	}

	aggregate, ok := asValues(raw)
	if !ok {
		return nil, false
	}
	s.remember(groupID, aggregate)
	value, ok := aggregate[optionID]
	return value, ok
}

func asValues(raw any) (Values, bool) {
	switch typed := raw.(type) {
	case Values:
		return typed, true
	case map[string]any:
		return Values(typed), true
	default:
		if m, ok := coerce.AsMap(raw); ok {
			return Values(m), true
		}
		return nil, false
	}
}

func widgetKind(w Widget) Kind {
	if w == nil {
		return 0
	}
	return w.Kind()
}
