package store

import (
	"context"
	"fmt"
	"time"

	formsync "github.com/goliatone/go-formsync"
	"github.com/goliatone/go-formsync/pkg/activity"
	"github.com/google/uuid"
)

// Syncer drives whole load/save cycles: it loads snapshots from the store,
// applies them through a session, and persists extracted values back. An
// optional emitter publishes lifecycle activity.
type Syncer struct {
	Store   Store
	Emitter *activity.Emitter
}

// LoadCycle loads the snapshot for ref, resets the session, and applies every
// widget. A missing snapshot applies an empty map so provider and markup
// defaults take over. Returns the loaded snapshot for caller bookkeeping.
func (s Syncer) LoadCycle(ctx context.Context, ref Ref, session *formsync.Session, widgets []formsync.Widget) (formsync.Values, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("store: store is required")
	}
	if session == nil {
		return nil, fmt.Errorf("store: session is required")
	}

	snapshot, meta, ok, err := s.Store.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("store: load %q for profile %q: %w", ref.Form, ref.Profile, err)
	}
	if !ok {
		snapshot = formsync.Values{}
	}

	session.Reset()
	for _, w := range widgets {
		if w == nil {
			continue
		}
		if err := session.Apply(w.OptionID(), w.GroupID(), w, snapshot); err != nil {
			return nil, err
		}
	}

	s.emit(ctx, activity.Event{
		Verb:       activity.VerbOptionsLoaded,
		Form:       ref.Form,
		Profile:    ref.Profile,
		SnapshotID: meta.SnapshotID,
	})
	return snapshot, nil
}

// SaveWidget extracts w (group-aware), merges the result into the stored
// snapshot, and saves it under a fresh snapshot id. meta carries caller
// expectations: a non-empty ETag must match the stored one or the save fails
// with ErrETagMismatch.
func (s Syncer) SaveWidget(ctx context.Context, ref Ref, meta Meta, session *formsync.Session, w formsync.Widget) (Meta, error) {
	if s.Store == nil {
		return Meta{}, fmt.Errorf("store: store is required")
	}
	if session == nil {
		return Meta{}, fmt.Errorf("store: session is required")
	}

	id, value, err := session.Extract(w, true)
	if err != nil {
		return Meta{}, err
	}

	snapshot, loadedMeta, ok, err := s.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("store: load %q for profile %q: %w", ref.Form, ref.Profile, err)
	}
	if !ok {
		snapshot = formsync.Values{}
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	oldValue := snapshot[id]
	if aggregate, ok := value.(formsync.Values); ok {
		snapshot[id] = map[string]any(aggregate)
	} else {
		snapshot[id] = value
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	saveMeta.SnapshotID = uuid.NewString()
	saveMeta.UpdatedAt = time.Now()

	savedMeta, err := s.Store.Save(ctx, ref, snapshot, saveMeta)
	if err != nil {
		return loadedMeta, fmt.Errorf("store: save %q for profile %q: %w", ref.Form, ref.Profile, err)
	}

	event := activity.Event{
		Verb:       activity.VerbOptionsSaved,
		Form:       ref.Form,
		Profile:    ref.Profile,
		OptionID:   id,
		SnapshotID: savedMeta.SnapshotID,
		OldValue:   oldValue,
		NewValue:   snapshot[id],
	}
	if groupID := w.GroupID(); groupID != "" {
		event.OptionID = ""
		event.GroupID = groupID
		extracted := event
		extracted.Verb = activity.VerbGroupExtracted
		s.emit(ctx, extracted)
	}
	s.emit(ctx, event)

	return savedMeta, nil
}

func (s Syncer) emit(ctx context.Context, event activity.Event) {
	if s.Emitter == nil {
		return
	}
	// Emission failures never abort a sync; hooks observe, they do not gate.
	_ = s.Emitter.Emit(ctx, event)
}
