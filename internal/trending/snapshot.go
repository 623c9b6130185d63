package trending

import (
	"sync/atomic"
	"time"
)

// Snapshot is an immutable, complete set of trending scores. Callers must not
// modify Entries.
type Snapshot struct {
	Version uint64
	BuiltAt time.Time
	Entries []Entry
}

// SnapshotStore publishes snapshots with a single atomic pointer swap, so
// readers see either the previous or the next complete set and never block.
type SnapshotStore struct {
	current atomic.Pointer[Snapshot]
}

func NewSnapshotStore() *SnapshotStore {
	s := &SnapshotStore{}
	s.current.Store(&Snapshot{Entries: []Entry{}})
	return s
}

// Current returns the latest published snapshot. Before the first publish it
// is an empty snapshot with version 0.
func (s *SnapshotStore) Current() *Snapshot {
	return s.current.Load()
}

// Publish stamps entries with the next version and makes them current.
// It has a single writer, the Aggregator, which serialises calls.
func (s *SnapshotStore) Publish(entries []Entry, builtAt time.Time) *Snapshot {
	next := &Snapshot{
		Version: s.current.Load().Version + 1,
		BuiltAt: builtAt,
		Entries: entries,
	}
	s.current.Store(next)
	return next
}
