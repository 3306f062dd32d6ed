package store

import "sync"

// Store owns the current snapshot. Dispatch is the only mutation path; the
// coordinator, the realtime applier and the connectivity feed all funnel
// through it, so a reader can never observe a half-applied transition.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// New creates a store with an empty snapshot.
func New() *Store {
	return &Store{snap: &Snapshot{}}
}

// Dispatch applies one action through the reducer and publishes the
// resulting snapshot.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Reduce(s.snap, a)
}

// Snapshot returns the current snapshot. The returned value must be treated
// as read-only.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
