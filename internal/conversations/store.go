// Package conversations maintains the conversation summary list.
package conversations

import (
	"context"
	"sync"
	"time"

	"chat-client/internal/models"
)

// FetchFunc loads the authoritative list from the REST collaborator.
type FetchFunc func(ctx context.Context) ([]models.Conversation, error)

// Store holds the ordered conversation summaries. Refresh replaces the
// list wholesale; socket events patch rows in place. Concurrent refreshes
// are last-write-wins: each call takes a monotonic ticket and a response
// only commits if no newer ticket has been issued since.
type Store struct {
	fetch FetchFunc

	mu      sync.RWMutex
	list    []models.Conversation
	ticket  int
	applied int
}

func NewStore(fetch FetchFunc) *Store {
	return &Store{fetch: fetch}
}

// Refresh fetches the list and commits it unless a newer Refresh started
// while this one was in flight.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.ticket++
	ticket := s.ticket
	s.mu.Unlock()

	list, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.applied || ticket < s.ticket {
		// A newer refresh already committed or is in flight; discard.
		return nil
	}
	s.applied = ticket
	s.list = list
	return nil
}

// Touch updates the preview and timestamp for peer and optionally bumps
// the unread counter. It reports false when the peer has no row yet, in
// which case the caller schedules a full Refresh.
func (s *Store) Touch(peer models.ID, preview string, at time.Time, incrementUnread bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].PeerID != peer {
			continue
		}
		s.list[i].LastMessage = preview
		s.list[i].LastMessageDate = at
		if incrementUnread {
			s.list[i].UnreadCount++
		}
		return true
	}
	return false
}

// ZeroUnread resets the unread counter for peer.
func (s *Store) ZeroUnread(peer models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].PeerID == peer {
			s.list[i].UnreadCount = 0
			return
		}
	}
}

// ApplyUnreadCounts overwrites unread counters from the authoritative
// per-peer map. Peers missing from the map drop to zero.
func (s *Store) ApplyUnreadCounts(counts map[models.ID]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		s.list[i].UnreadCount = counts[s.list[i].PeerID]
	}
}

// Get returns the row for peer.
func (s *Store) Get(peer models.ID) (models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, conversation := range s.list {
		if conversation.PeerID == peer {
			return conversation, true
		}
	}
	return models.Conversation{}, false
}

// All returns a copy of the list in collaborator order.
func (s *Store) All() []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Conversation, len(s.list))
	copy(out, s.list)
	return out
}
