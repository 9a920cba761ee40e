package state

import (
	"time"

	"github.com/five82/hylauncher/internal/syncutil"
)

// Snapshot is the latest installation probe result available to the UI.
type Snapshot struct {
	Installed   bool
	Probed      bool // false until the first probe lands
	ClientPath  string
	LastChecked time.Time
}

// Store coordinates concurrent access to the snapshot.
type Store struct {
	mu       syncutil.RWMutex
	snapshot Snapshot
}

// Update records a probe result taken at the given time.
func (s *Store) Update(installed bool, clientPath string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Installed = installed
	s.snapshot.Probed = true
	s.snapshot.ClientPath = clientPath
	s.snapshot.LastChecked = at
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
