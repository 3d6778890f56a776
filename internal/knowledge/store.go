package knowledge

import (
	"fmt"
	"sync/atomic"
)

// Store holds the process-wide knowledge base. Sessions take an immutable
// Snapshot; Reload swaps in a fully built replacement so in-flight sessions
// never observe a partially updated base.
type Store struct {
	current atomic.Pointer[Base]
	path    string // empty means the embedded default
}

// NewStore loads the knowledge base once. An empty path uses the embedded
// default data.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	b, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(b)
	return s, nil
}

func (s *Store) load() (*Base, error) {
	if s.path == "" {
		return LoadDefault()
	}
	return LoadFile(s.path)
}

// Snapshot returns the current base. The returned value is immutable and
// remains valid for the whole session even if Reload runs concurrently.
func (s *Store) Snapshot() *Base {
	return s.current.Load()
}

// Reload builds a fresh base from the original source and atomically swaps
// it in. On failure the previous base stays active.
func (s *Store) Reload() error {
	b, err := s.load()
	if err != nil {
		return fmt.Errorf("reload rejected: %w", err)
	}
	s.current.Store(b)
	return nil
}
