package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultMemorySize = 10_000

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process, size bounded Store. Expired entries are
// dropped lazily on read; the LRU policy evicts the rest under pressure.
type MemoryStore struct {
	items *lru.Cache[string, memoryEntry]
	now   func() time.Time
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}
	items, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &MemoryStore{items: items, now: time.Now}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := s.items.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.items.Remove(key)
		return nil, ErrMiss
	}
	return e.value, nil
}

// Set stores a copy of value. A non-positive ttl keeps the entry until evicted.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.items.Add(key, e)
	return nil
}

func (s *MemoryStore) Len() int {
	return s.items.Len()
}

var _ Store = (*MemoryStore)(nil)
