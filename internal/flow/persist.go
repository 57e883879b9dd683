package flow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/giftdesk/internal/result"
)

// SnapshotStore persists slice snapshots as JSON files, one file per
// slice, so an interrupted order flow can be resumed.
type SnapshotStore struct {
	dir string
}

// DefaultSnapshotDir returns ~/.giftdesk/state.
func DefaultSnapshotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".giftdesk", "state"), nil
}

// NewSnapshotStore creates a snapshot store rooted at dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Save writes a snapshot for a slice, replacing any previous one.
func (st *SnapshotStore) Save(slice string, v any) error {
	if err := os.MkdirAll(st.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", slice, err)
	}

	path := filepath.Join(st.dir, slice+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s snapshot: %w", slice, err)
	}
	return nil
}

// Load reads a slice snapshot into out. It reports false without error
// when no snapshot exists.
func (st *SnapshotStore) Load(slice string, out any) (bool, error) {
	path := filepath.Join(st.dir, slice+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s snapshot: %w", slice, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse %s snapshot: %w", slice, err)
	}
	return true, nil
}

// Persist returns a side-effect-only middleware that snapshots the
// state as it was at dispatch time. project maps the state to its
// durable shape, dropping volatile bookkeeping fields. The middleware
// always passes; a failed write must never block the action pipeline.
func Persist[S, A any](store *SnapshotStore, slice string, project func(S) any) Middleware[S, A] {
	return Middleware[S, A]{
		Name: "persistence",
		Check: func(_ A, state S) result.Result[bool] {
			if store != nil {
				_ = store.Save(slice, project(state))
			}
			return result.Ok(true)
		},
	}
}
