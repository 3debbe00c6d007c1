// Package presence tracks which users are currently online.
package presence

import (
	"sort"
	"sync"

	"chat-client/internal/models"
)

// Tracker holds the server-driven online set. It applies snapshots and
// incremental online/offline events idempotently and never expires entries
// on its own: after a drop the set is stale until the next snapshot.
type Tracker struct {
	mu     sync.RWMutex
	online map[models.ID]struct{}
}

func New() *Tracker {
	return &Tracker{online: make(map[models.ID]struct{})}
}

// Snapshot replaces the set wholesale.
func (t *Tracker) Snapshot(ids []models.ID) {
	next := make(map[models.ID]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	t.mu.Lock()
	t.online = next
	t.mu.Unlock()
}

// SetOnline adds one user. Re-adding is a no-op.
func (t *Tracker) SetOnline(id models.ID) {
	t.mu.Lock()
	t.online[id] = struct{}{}
	t.mu.Unlock()
}

// SetOffline removes one user. Removing an absent id is a no-op.
func (t *Tracker) SetOffline(id models.ID) {
	t.mu.Lock()
	delete(t.online, id)
	t.mu.Unlock()
}

// IsOnline reports whether id is in the set.
func (t *Tracker) IsOnline(id models.ID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.online[id]
	return ok
}

// Online returns the set as a sorted slice.
func (t *Tracker) Online() []models.ID {
	t.mu.RLock()
	ids := make([]models.ID, 0, len(t.online))
	for id := range t.online {
		ids = append(ids, id)
	}
	t.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
