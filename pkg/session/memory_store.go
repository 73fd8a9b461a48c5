package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and development. Records
// expire by TTL; an optional background sweep reclaims them eagerly.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	ticker  *time.Ticker
	done    chan struct{}
}

type memoryRecord struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store. A positive cleanupInterval
// starts a sweeper goroutine; pass 0 to rely on lazy expiry alone.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		records: make(map[string]memoryRecord),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.sweepLoop()
	}

	return store
}

// Get implements Store. Expired records count as absent.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	rec, ok := m.records[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if time.Now().After(rec.expiresAt) {
		m.mu.Lock()
		delete(m.records, key)
		m.mu.Unlock()
		return nil, false, nil
	}

	value := make([]byte, len(rec.value))
	copy(value, rec.value)
	return value, true, nil
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.records[key] = memoryRecord{value: stored, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of live records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	now := time.Now()
	for _, rec := range m.records {
		if now.Before(rec.expiresAt) {
			n++
		}
	}
	return n
}

// Close stops the sweeper goroutine.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) sweepLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) sweep() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, rec := range m.records {
		if now.After(rec.expiresAt) {
			delete(m.records, key)
		}
	}
}
