// Package chat composes the transport and the state stores behind one API.
package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"chat-client/internal/conversations"
	"chat-client/internal/models"
	"chat-client/internal/presence"
	"chat-client/internal/rest"
	"chat-client/internal/thread"
	"chat-client/internal/transport"
	"chat-client/internal/typing"
)

// Transport is the slice of the connection manager the façade uses.
type Transport interface {
	Connect(ctx context.Context, token string) error
	Close() error
	IsLive() bool
	Emit(event string, data any) bool
	OnEvent(transport.Handler)
	OnStateChange(transport.StateFunc)
}

// Client is the chat façade: the sole writer to the presence, typing,
// conversation and thread state. The presentation layer reads derived
// state and calls the methods below; it never reaches the stores directly.
type Client struct {
	session models.Session
	api     rest.ChatAPI
	conn    Transport

	presence *presence.Tracker
	typing   *typing.Tracker
	convs    *conversations.Store
	thread   *thread.Store

	closed atomic.Bool
}

// Option tweaks client construction.
type Option func(*options)

type options struct {
	typingWindow time.Duration
}

// WithTypingWindow overrides the typing inactivity window.
func WithTypingWindow(window time.Duration) Option {
	return func(o *options) { o.typingWindow = window }
}

// New builds the façade for one authenticated session. The transport's
// event handler is wired exactly once here; the transport's generation
// counter keeps stale handlers from firing across reconnects.
func New(session models.Session, api rest.ChatAPI, conn Transport, opts ...Option) *Client {
	o := options{typingWindow: typing.DefaultWindow}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		session:  session,
		api:      api,
		conn:     conn,
		presence: presence.New(),
		convs:    conversations.NewStore(api.Conversations),
		thread:   thread.NewStore(api.Thread),
	}
	c.typing = typing.New(o.typingWindow, c.emitTyping)

	conn.OnEvent(c.handleEvent)
	conn.OnStateChange(c.handleState)
	return c
}

// Session returns the identity the façade was built for.
func (c *Client) Session() models.Session { return c.session }

// Connect establishes the chat channel and requests a presence snapshot.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.conn.Connect(ctx, c.session.Token); err != nil {
		return err
	}
	c.conn.Emit(models.EventUsersRequest, nil)
	return nil
}

// Close tears the session down. Late event deliveries and in-flight REST
// responses become no-ops.
func (c *Client) Close() error {
	c.closed.Store(true)
	c.typing.StopAll()
	c.thread.Clear()
	return c.conn.Close()
}

// IsLive reports whether outbound actions would currently be delivered.
func (c *Client) IsLive() bool { return c.conn.IsLive() }

// SendMessage emits a message:send. The thread is not updated here: the
// store waits for the server's message:sent echo, which carries the
// authoritative id and timestamp. Returns false when the action was
// dropped because the connection is not live.
func (c *Client) SendMessage(peer models.ID, content string, petitionID *models.ID) bool {
	if !c.conn.IsLive() {
		return false
	}
	c.typing.Stop(peer)
	return c.conn.Emit(models.EventMessageSend, models.SendMessagePayload{
		ReceiverID: peer,
		Content:    content,
		PetitionID: petitionID,
	})
}

// MarkAsRead emits a message:read acknowledgement for peer. Flags and
// counters flip when the server's messages:read broadcast echoes back.
func (c *Client) MarkAsRead(peer models.ID) bool {
	if !c.conn.IsLive() {
		return false
	}
	return c.conn.Emit(models.EventMessageRead, models.ReadPayload{OtherUserID: peer})
}

// StartTyping registers a local keystroke toward peer. The tracker emits
// typing:start once per session and arms the inactivity timer. Dead
// connections drop the keystroke entirely.
func (c *Client) StartTyping(peer models.ID) {
	if !c.conn.IsLive() {
		return
	}
	c.typing.Keystroke(peer)
}

// StopTyping ends the local typing session toward peer.
func (c *Client) StopTyping(peer models.ID) {
	c.typing.Stop(peer)
}

// LoadConversations refreshes the conversation list from the backend.
func (c *Client) LoadConversations(ctx context.Context) error {
	return c.convs.Refresh(ctx)
}

// LoadMessages opens the thread with peer and loads its history. If the
// peer has no conversation row yet it is materialized by a list refresh.
func (c *Client) LoadMessages(ctx context.Context, peer models.ID) error {
	if err := c.thread.Load(ctx, peer); err != nil {
		return err
	}
	if _, known := c.convs.Get(peer); !known {
		c.refreshConversations()
	}
	return nil
}

// SyncUnreadCounts pulls the authoritative unread counters.
func (c *Client) SyncUnreadCounts(ctx context.Context) error {
	counts, err := c.api.UnreadCounts(ctx)
	if err != nil {
		return err
	}
	if c.closed.Load() {
		return nil
	}
	c.convs.ApplyUnreadCounts(counts)
	return nil
}

// Read-only views for the presentation layer.

func (c *Client) Messages() []models.Message           { return c.thread.Messages() }
func (c *Client) Conversations() []models.Conversation { return c.convs.All() }
func (c *Client) OnlineUsers() []models.ID             { return c.presence.Online() }
func (c *Client) TypingUsers() []models.ID             { return c.typing.Typing() }
func (c *Client) OpenPeer() models.ID                  { return c.thread.OpenPeer() }

// handleEvent fans one inbound envelope out to the stores. The transport
// delivers envelopes strictly in order on a single goroutine, so the
// mutations below never interleave.
func (c *Client) handleEvent(env models.Envelope) {
	if c.closed.Load() {
		return
	}

	switch env.Event {
	case models.EventMessageSent:
		var msg models.Message
		if !decode(env, &msg) {
			return
		}
		peer := msg.ReceiverID
		c.thread.Append(peer, msg)
		if !c.convs.Touch(peer, msg.Content, msg.CreatedAt, false) {
			c.refreshConversations()
		}

	case models.EventMessageReceived:
		var msg models.Message
		if !decode(env, &msg) {
			return
		}
		peer := msg.PeerOf(c.session.UserID)
		open := c.thread.OpenPeer() == peer
		if open {
			c.thread.Append(peer, msg)
		}
		if !c.convs.Touch(peer, msg.Content, msg.CreatedAt, !open) {
			c.refreshConversations()
		}

	case models.EventMessagesRead:
		var payload models.MessagesReadPayload
		if !decode(env, &payload) {
			return
		}
		c.thread.MarkReadBy(payload.UserID, c.session.UserID)
		c.convs.ZeroUnread(payload.UserID)

	case models.EventTypingStart:
		var payload models.UserEventPayload
		if decode(env, &payload) {
			c.typing.SetTyping(payload.UserID)
		}

	case models.EventTypingStop:
		var payload models.UserEventPayload
		if decode(env, &payload) {
			c.typing.ClearTyping(payload.UserID)
		}

	case models.EventUserOnline:
		var payload models.UserEventPayload
		if decode(env, &payload) {
			c.presence.SetOnline(payload.UserID)
		}

	case models.EventUserOffline:
		var payload models.UserEventPayload
		if decode(env, &payload) {
			c.presence.SetOffline(payload.UserID)
		}

	case models.EventOnlineUsers:
		var payload models.OnlineUsersPayload
		if decode(env, &payload) {
			c.presence.Snapshot(payload.UserIDs)
		}
	}
}

func (c *Client) handleState(live bool, reason string) {
	if live {
		return
	}
	// Presence and unread deltas are stale until the next snapshot and
	// refresh; local typing sessions can no longer reach the peer.
	c.typing.StopAll()
	if reason != "" && reason != "closed" {
		log.Printf("chat connection lost: %s", reason)
	}
}

// refreshConversations materializes unknown peers with a full list fetch.
// It runs off the event path; a failure leaves the previous list in place.
func (c *Client) refreshConversations() {
	go func() {
		if c.closed.Load() {
			return
		}
		if err := c.convs.Refresh(context.Background()); err != nil {
			log.Printf("conversation refresh failed: %v", err)
		}
	}()
}

func (c *Client) emitTyping(peer models.ID, start bool) {
	event := models.EventTypingStop
	if start {
		event = models.EventTypingStart
	}
	c.conn.Emit(event, models.TypingPayload{ReceiverID: peer})
}

func decode(env models.Envelope, out any) bool {
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Printf("chat event %s: malformed payload: %v", env.Event, err)
		return false
	}
	return true
}
