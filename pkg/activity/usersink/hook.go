// Package usersink bridges sync activity into a go-users ActivitySink.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-formsync/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts sync activity events to a go-users ActivitySink. The actor id
// doubles as the user id; sync events carry no separate end-user identity.
type Hook struct {
	Sink usertypes.ActivitySink
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := event.Normalize()
	kind, id := normalized.Subject()
	if normalized.Verb == "" || id == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	actor := parseUUID(normalized.ActorID)
	return h.Sink.Log(ctx, usertypes.ActivityRecord{
		ActorID:    actor,
		UserID:     actor,
		Verb:       normalized.Verb,
		ObjectType: kind,
		ObjectID:   id,
		Channel:    normalized.Channel,
		Data:       eventData(normalized),
		OccurredAt: normalized.OccurredAt,
	})
}

// eventData flattens the sync fields into the free-form Data payload go-users
// records carry.
func eventData(event activity.Event) map[string]any {
	data := map[string]any{}
	if event.Form != "" {
		data["form"] = event.Form
	}
	if event.Profile != "" {
		data["profile"] = event.Profile
	}
	if event.OptionID != "" {
		data["option_id"] = event.OptionID
	}
	if event.GroupID != "" {
		data["group_id"] = event.GroupID
	}
	if event.SnapshotID != "" {
		data["snapshot_id"] = event.SnapshotID
	}
	if event.OldValue != nil {
		data["old_value"] = event.OldValue
	}
	if event.NewValue != nil {
		data["new_value"] = event.NewValue
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
