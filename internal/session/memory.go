package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore keeps session records in process memory. Used when no Redis
// address is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// Save records a session that expires after ttl
func (s *MemoryStore) Save(_ context.Context, sessionID string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

// Load returns the user of a live session; expired entries are dropped
func (s *MemoryStore) Load(_ context.Context, sessionID string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return 0, false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, sessionID)
		return 0, false, nil
	}
	return e.userID, true, nil
}

// Delete forgets a session
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
