// Package recent holds the bounded, order-sensitive, persisted list of
// recently touched vehicle ids. Most-recently-used is always first, entries
// are unique, and corruption of the persisted state degrades to an empty list.
package recent

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/DVA506/SmartMove/pkg/log"
	"github.com/DVA506/SmartMove/pkg/options"
)

// StorageKey is the fixed namespace key under which the list is persisted.
// It survives process restarts and is cleared only by explicit user action.
const StorageKey = "smartmove_recent_vehicle_ids"

// Store persists the MRU list as a JSON array in a single file.
type Store struct {
	path     string
	capacity int
	log      log.Logger
}

// NewStore creates a Store rooted at the configured state directory.
func NewStore(opts *options.CacheOptions) (*Store, error) {
	dir, err := opts.ResolveDir()
	if err != nil {
		return nil, err
	}
	return &Store{
		path:     filepath.Join(dir, StorageKey+".json"),
		capacity: opts.Capacity,
		log:      log.WithName("recent"),
	}, nil
}

// Load returns the remembered ids, most-recent-first. Absent, corrupted and
// not-a-list storage all degrade to an empty list, never an error.
func (s *Store) Load() []string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		s.log.Debug("persisted recent list is corrupted, starting empty", "path", s.path, "err", err)
		return []string{}
	}
	return ids
}

// Add records id as the most recently used entry: any existing occurrence is
// removed, the id is prepended, and the list is truncated to capacity before
// persisting. Empty ids are ignored. Repeated calls with the same id keep its
// front position stable.
func (s *Store) Add(id string) {
	if id == "" {
		return
	}

	ids := s.Load()
	out := make([]string, 0, len(ids)+1)
	out = append(out, id)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if len(out) > s.capacity {
		out = out[:s.capacity]
	}
	s.save(out)
}

// Clear erases the persisted state entirely; a subsequent Load returns empty.
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to clear recent list", "path", s.path, "err", err)
	}
}

func (s *Store) save(ids []string) {
	raw, err := json.Marshal(ids)
	if err != nil {
		s.log.Warn("failed to encode recent list", "err", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Warn("failed to create state dir", "path", s.path, "err", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.log.Warn("failed to persist recent list", "path", s.path, "err", err)
	}
}
