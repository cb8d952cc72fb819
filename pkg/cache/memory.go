package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data     []byte
	storedAt time.Time
	ttl      time.Duration
}

func (e memoryEntry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) >= e.ttl
}

// Memory is an in-process Cache used to memoize outbound API calls.
// Entries expire by TTL only; when the configured capacity is reached
// the oldest inserted entry is dropped to keep the map bounded.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	order      []string // insertion order, for capacity eviction
	maxEntries int

	now func() time.Time
}

// NewMemory creates an in-process cache holding at most maxEntries entries.
// maxEntries <= 0 means unbounded.
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	m.mu.Unlock()

	if !ok || entry.expired(m.now()) {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
			m.evictOldestLocked()
		}
		m.order = append(m.order, key)
	}

	m.entries[key] = memoryEntry{data: data, storedAt: m.now(), ttl: ttl}
	return nil
}

func (m *Memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		m.removeLocked(key)
	}
	return nil
}

// Ping always succeeds for the in-process cache.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) evictOldestLocked() {
	if len(m.order) == 0 {
		return
	}
	oldest := m.order[0]
	m.removeLocked(oldest)
}

func (m *Memory) removeLocked(key string) {
	if _, ok := m.entries[key]; !ok {
		return
	}
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
