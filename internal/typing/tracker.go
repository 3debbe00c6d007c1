// Package typing tracks composition indicators in both directions.
package typing

import (
	"sort"
	"sync"
	"time"

	"chat-client/internal/models"
)

// DefaultWindow is the local inactivity window after the last keystroke.
const DefaultWindow = 2 * time.Second

// EmitFunc sends an outbound typing signal to peer. start distinguishes
// typing:start from typing:stop.
type EmitFunc func(peer models.ID, start bool)

// Tracker maintains the remote typing set and the local "am I typing"
// state per peer. Each peer owns a single-slot timer: a keystroke resets
// it, never stacks a second one.
type Tracker struct {
	mu     sync.Mutex
	window time.Duration
	emit   EmitFunc
	remote map[models.ID]struct{}
	timers map[models.ID]*time.Timer
}

func New(window time.Duration, emit EmitFunc) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{
		window: window,
		emit:   emit,
		remote: make(map[models.ID]struct{}),
		timers: make(map[models.ID]*time.Timer),
	}
}

// SetTyping records a remote typing:start.
func (t *Tracker) SetTyping(id models.ID) {
	t.mu.Lock()
	t.remote[id] = struct{}{}
	t.mu.Unlock()
}

// ClearTyping records a remote typing:stop.
func (t *Tracker) ClearTyping(id models.ID) {
	t.mu.Lock()
	delete(t.remote, id)
	t.mu.Unlock()
}

// IsTyping reports whether id is composing a message to the local user.
func (t *Tracker) IsTyping(id models.ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.remote[id]
	return ok
}

// Typing returns the remote typing set as a sorted slice.
func (t *Tracker) Typing() []models.ID {
	t.mu.Lock()
	ids := make([]models.ID, 0, len(t.remote))
	for id := range t.remote {
		ids = append(ids, id)
	}
	t.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Keystroke registers local composition activity toward peer. The first
// keystroke of a typing session emits typing:start; every keystroke resets
// the inactivity timer, and the timer firing emits typing:stop.
func (t *Tracker) Keystroke(peer models.ID) {
	t.mu.Lock()
	if timer, ok := t.timers[peer]; ok {
		timer.Reset(t.window)
		t.mu.Unlock()
		return
	}
	t.timers[peer] = time.AfterFunc(t.window, func() { t.expire(peer) })
	t.mu.Unlock()
	t.emit(peer, true)
}

// Stop ends the local typing session toward peer explicitly. It emits
// typing:stop only when a session was active.
func (t *Tracker) Stop(peer models.ID) {
	t.mu.Lock()
	timer, active := t.timers[peer]
	if active {
		timer.Stop()
		delete(t.timers, peer)
	}
	t.mu.Unlock()
	if active {
		t.emit(peer, false)
	}
}

// StopAll ends every local typing session without emitting; used on
// teardown when the transport can no longer carry the signal anyway.
func (t *Tracker) StopAll() {
	t.mu.Lock()
	for peer, timer := range t.timers {
		timer.Stop()
		delete(t.timers, peer)
	}
	t.mu.Unlock()
}

func (t *Tracker) expire(peer models.ID) {
	t.mu.Lock()
	_, active := t.timers[peer]
	if active {
		delete(t.timers, peer)
	}
	t.mu.Unlock()
	// A Stop or a late Reset may have raced the timer firing.
	if active {
		t.emit(peer, false)
	}
}
