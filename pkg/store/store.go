// Package store persists form value snapshots. It is the storage-facing half
// of the sync engine: Store implementations own durability, Syncer drives
// whole load/save cycles against a formsync.Session.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	formsync "github.com/goliatone/go-formsync"
)

var ErrETagMismatch = errors.New("store: etag mismatch")

// Ref identifies one persisted snapshot: the values of one form for one
// profile. An empty profile resolves to "default".
type Ref struct {
	Form    string
	Profile string
}

// Meta is storage-owned metadata used for trace/audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one snapshot for a single form reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (snapshot formsync.Values, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot formsync.Values, meta Meta) (Meta, error)
}

// Identifier returns the deterministic storage key for the reference.
func (r Ref) Identifier() (string, error) {
	form := strings.TrimSpace(r.Form)
	if form == "" {
		return "", fmt.Errorf("store: form is required")
	}
	profile := strings.TrimSpace(r.Profile)
	if profile == "" {
		profile = "default"
	}
	return fmt.Sprintf("%s/%s", profile, form), nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
