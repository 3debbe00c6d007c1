// Package thread maintains the message history of the open conversation.
package thread

import (
	"context"
	"sync"

	"chat-client/internal/models"
)

// FetchFunc loads the full history with one peer from the REST collaborator.
type FetchFunc func(ctx context.Context, peer models.ID) ([]models.Message, error)

// Store holds messages for the currently open peer only. History for other
// peers is never retained; switching threads re-fetches. A Load superseded
// by a newer Load discards its response at resolution time.
type Store struct {
	fetch FetchFunc

	mu       sync.RWMutex
	openPeer models.ID
	msgs     []models.Message
	seen     map[models.ID]struct{}
	ticket   int
	applied  int
}

func NewStore(fetch FetchFunc) *Store {
	return &Store{seen: make(map[models.ID]struct{}), fetch: fetch}
}

// Load opens the thread with peer and replaces the message sequence
// atomically once the history arrives. The open peer switches immediately
// so live events route to the right thread while the fetch is in flight.
func (s *Store) Load(ctx context.Context, peer models.ID) error {
	s.mu.Lock()
	s.ticket++
	ticket := s.ticket
	s.openPeer = peer
	s.mu.Unlock()

	history, err := s.fetch(ctx, peer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.applied || ticket < s.ticket || s.openPeer != peer {
		// Superseded by a newer Load; stale history is discarded silently.
		return nil
	}
	s.applied = ticket
	s.msgs = history
	s.seen = make(map[models.ID]struct{}, len(history))
	for _, m := range history {
		s.seen[m.ID] = struct{}{}
	}
	return nil
}

// Append adds one message to the open thread. It is a no-op unless peer is
// the open peer, and dedupes by message id.
func (s *Store) Append(peer models.ID, msg models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openPeer == 0 || s.openPeer != peer {
		return false
	}
	if _, dup := s.seen[msg.ID]; dup {
		return false
	}
	s.seen[msg.ID] = struct{}{}
	s.msgs = append(s.msgs, msg)
	return true
}

// MarkReadBy flips the viewed flag on every message the local user sent to
// peer, when peer is the open thread. The flip is one-way.
func (s *Store) MarkReadBy(peer, localUser models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openPeer != peer {
		return
	}
	for i := range s.msgs {
		if s.msgs[i].SenderID == localUser && s.msgs[i].ReceiverID == peer {
			s.msgs[i].Viewed = true
		}
	}
}

// OpenPeer returns the peer of the open thread, zero when none is open.
func (s *Store) OpenPeer() models.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.openPeer
}

// Messages returns a copy of the open thread in append order.
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Clear drops all thread state; used on session teardown so late writes
// become no-ops.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticket++
	s.openPeer = 0
	s.msgs = nil
	s.seen = make(map[models.ID]struct{})
}
