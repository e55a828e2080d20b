package verification

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	code     string
	issuedAt time.Time
	timer    *time.Timer
}

// MemoryStore keeps pending codes in a process-local map. Each Put arms a
// one-shot timer that evicts the entry at TTL, and Get double-checks the
// issuance age so a late-firing timer can't hand out a stale code. Suitable
// for a single server instance only; use RedisStore when the registration
// flow is shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore whose entries expire after ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[email]; ok {
		prev.timer.Stop()
	}

	entry := &memoryEntry{code: code, issuedAt: s.now()}
	entry.timer = time.AfterFunc(s.ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Only evict if this issuance is still the live one
		if cur, ok := s.entries[email]; ok && cur == entry {
			delete(s.entries, email)
		}
	})
	s.entries[email] = entry
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, email string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return "", false, nil
	}
	if s.now().Sub(entry.issuedAt) > s.ttl {
		entry.timer.Stop()
		delete(s.entries, email)
		return "", false, nil
	}
	return entry.code, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[email]; ok {
		entry.timer.Stop()
		delete(s.entries, email)
	}
	return nil
}
