package mirror

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Snapshot keys; each list is persisted independently so one corrupt file
// cannot take the others down.
const (
	keyCategories = "categories"
	keyProducts   = "products"
	keyContacts   = "contacts"
	keyLogin      = "login"
)

// snapshotStore persists JSON snapshots of the mirror lists. Timestamps are
// serialized as RFC 3339 strings by the standard time.Time JSON round-trip.
type snapshotStore struct {
	dir string
}

func newSnapshotStore(dir string) (*snapshotStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("snapshot directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &snapshotStore{dir: dir}, nil
}

func (s *snapshotStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// load reads a snapshot into dst, leaving dst untouched when the file does
// not exist. A corrupt snapshot is logged and treated as absent rather than
// failing startup.
func (s *snapshotStore) load(key string, dst any) error {
	_, err := s.loadIfPresent(key, dst)
	return err
}

// loadIfPresent reads a snapshot into dst and reports whether a usable file
// existed.
func (s *snapshotStore) loadIfPresent(key string, dst any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("discarding corrupt snapshot", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// save writes a snapshot. Failures are logged, not raised: snapshot
// persistence is a fallback layer and must never block a mutation.
func (s *snapshotStore) save(key string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Warn("marshal snapshot", "key", key, "error", err)
		return
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		slog.Warn("write snapshot", "key", key, "error", err)
	}
}

func (m *Mirror) persistCategories() { m.snapshots.save(keyCategories, m.categories) }
func (m *Mirror) persistProducts()   { m.snapshots.save(keyProducts, m.products) }
func (m *Mirror) persistContacts()   { m.snapshots.save(keyContacts, m.contacts) }
func (m *Mirror) persistLogin()      { m.snapshots.save(keyLogin, m.loggedIn) }
