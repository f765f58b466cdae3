package formsync

import "time"

// Extract reads w's current state back into a storable (id, value) pair.
//
// Standalone widgets, and any widget when useGroup is false, extract a single
// scalar: tri-state toggles yield nil for indeterminate, choice widgets yield
// the selected child's id and value, numeric widgets parse their textual slot
// into a number, text widgets return the raw text.
//
// When w declares group membership and useGroup is true, Extract rebuilds the
// whole group: the aggregate is seeded from the remembered table, every widget
// in scope sharing the group id is re-extracted into it, and the group id is
// returned together with the full aggregate. Persisting only the touched
// member would silently erase its siblings.
func (s *Session) Extract(w Widget, useGroup bool) (string, any, error) {
	start := time.Now()
	id, value, err := s.extract(w, useGroup)
	s.logger().LogSync(SyncLogEvent{
		Op:       opExtract,
		OptionID: s.OptionID(w),
		GroupID:  groupIDOf(w),
		Kind:     widgetKind(w),
		Duration: time.Since(start),
		Err:      err,
	})
	return id, value, err
}

func (s *Session) extract(w Widget, useGroup bool) (string, any, error) {
	if w == nil {
		return "", nil, ErrNilWidget
	}

	groupID := w.GroupID()
	if !useGroup || groupID == "" {
		return s.extractSingle(w)
	}

	aggregate := Values{}
	if cached, ok := s.rememberedAggregate(groupID); ok {
		aggregate = cached.Clone()
	}

	for _, member := range s.groupMembers(groupID, w) {
		id, value, err := s.extractSingle(member)
		if err != nil {
			return "", nil, err
		}
		aggregate[id] = value
	}

	s.storeAggregate(groupID, aggregate)
	return groupID, aggregate, nil
}

func (s *Session) extractSingle(w Widget) (string, any, error) {
	b, err := binderFor(w.Kind())
	if err != nil {
		return "", nil, err
	}
	return b.extract(w)
}

// groupMembers enumerates every widget in the current scope declaring
// groupID. Without a configured scope the invoking widget stands in for the
// whole group.
func (s *Session) groupMembers(groupID string, invoking Widget) []Widget {
	if s.cfg.scope == nil {
		return []Widget{invoking}
	}
	members := s.cfg.scope.WidgetsInGroup(groupID)
	if len(members) == 0 {
		return []Widget{invoking}
	}
	return members
}

func groupIDOf(w Widget) string {
	if w == nil {
		return ""
	}
	return w.GroupID()
}
