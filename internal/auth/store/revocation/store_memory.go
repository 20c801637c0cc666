package revocation

import (
	"context"
	"sync"
	"time"

	id "kader/pkg/domain"
)

type memoryEntry struct {
	revokedAt time.Time
	expiresAt time.Time
}

// InMemoryList is a process-local revocation list for tests and single-node
// deployments. It intentionally favors clarity over performance.
type InMemoryList struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewInMemoryList() *InMemoryList {
	return &InMemoryList{entries: make(map[string]memoryEntry)}
}

func (l *InMemoryList) RevokeAll(_ context.Context, employeeID id.EmployeeID, at time.Time, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := employeeID.String()
	// Never move an existing watermark backwards.
	if existing, ok := l.entries[key]; ok && existing.revokedAt.After(at) {
		return nil
	}
	l.entries[key] = memoryEntry{revokedAt: at, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (l *InMemoryList) IsRevoked(_ context.Context, employeeID id.EmployeeID, issuedAt time.Time) (bool, error) {
	l.mu.RLock()
	entry, ok := l.entries[employeeID.String()]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		l.mu.Lock()
		delete(l.entries, employeeID.String())
		l.mu.Unlock()
		return false, nil
	}
	return !issuedAt.After(entry.revokedAt), nil
}
