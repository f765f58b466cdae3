package formsync

// WidgetSet is a minimal in-memory WidgetScope intended for tests and
// examples. Real integrations answer the group query from their own widget
// tree.
type WidgetSet struct {
	widgets []Widget
}

// NewWidgetSet constructs a set over the given widgets.
func NewWidgetSet(widgets ...Widget) *WidgetSet {
	set := &WidgetSet{}
	for _, w := range widgets {
		set.Add(w)
	}
	return set
}

// Add registers a widget with the set.
func (s *WidgetSet) Add(w Widget) {
	if w == nil {
		return
	}
	s.widgets = append(s.widgets, w)
}

// Widgets returns every registered widget in insertion order.
func (s *WidgetSet) Widgets() []Widget {
	out := make([]Widget, len(s.widgets))
	copy(out, s.widgets)
	return out
}

// WidgetsInGroup implements WidgetScope.
func (s *WidgetSet) WidgetsInGroup(groupID string) []Widget {
	if groupID == "" {
		return nil
	}
	var members []Widget
	for _, w := range s.widgets {
		if w.GroupID() == groupID {
			members = append(members, w)
		}
	}
	return members
}
