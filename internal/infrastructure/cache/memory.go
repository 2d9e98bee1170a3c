package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mapledash/character-api/internal/core/domain"
)

type entry struct {
	payload   *domain.CompositeResponse
	expiresAt time.Time
}

// Memory is a process-local response cache. Entries expire lazily: the lookup
// that finds an expired entry deletes it. There is no background sweep and no
// size bound, the key space is small and every entry ages out.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns a Memory cache with the given TTL. A zero or negative TTL
// disables caching.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for expiry. Intended for tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(_ context.Context, signature string) (*domain.CompositeResponse, error) {
	if m.ttl <= 0 {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[signature]
	if !ok {
		return nil, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, signature)
		return nil, nil
	}
	return e.payload.Clone(), nil
}

// Put stores resp under signature. Concurrent writers race; the last one wins.
func (m *Memory) Put(_ context.Context, signature string, resp *domain.CompositeResponse) error {
	if m.ttl <= 0 || resp == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[signature] = entry{
		payload:   resp.Clone(),
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
