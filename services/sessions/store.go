package sessions

import (
	"sync"
	"time"
)

// DefaultTTL is how long a login stays valid without re-authenticating.
const DefaultTTL = 7 * 24 * time.Hour

// Store is the server-side binding from an opaque session token to a player
// id. The session cookie handed to the client carries only the token, so a
// caller can never forge or read another player's identity.
type Store interface {
	// Bind associates token with playerID for ttl
	Bind(token string, playerID uint, ttl time.Duration) error
	// Lookup resolves token. ok is false for unknown or expired tokens
	Lookup(token string) (playerID uint, ok bool, err error)
	// Revoke drops the binding. Revoking an unknown token is not an error
	Revoke(token string) error
}

type memoryEntry struct {
	playerID  uint
	expiresAt time.Time
}

// MemoryStore keeps the token bindings in process memory. Used when no Redis
// is configured (development, tests).
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Bind(token string, playerID uint, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = memoryEntry{playerID: playerID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Lookup(token string) (uint, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[token]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, token)
		return 0, false, nil
	}
	return entry.playerID, true, nil
}

func (m *MemoryStore) Revoke(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, token)
	return nil
}
