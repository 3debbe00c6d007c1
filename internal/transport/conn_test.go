package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-client/internal/models"
)

// newChatServer runs a websocket endpoint that accepts exactly one token,
// acks with a connected envelope, and records inbound frames.
func newChatServer(t *testing.T, acceptToken string) (*httptest.Server, chan models.Envelope, chan *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	inbound := make(chan models.Envelope, 32)
	accepted := make(chan *websocket.Conn, 4)

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		_, data, err := ws.ReadMessage()
		if err != nil {
			ws.Close()
			return
		}
		var env models.Envelope
		var auth models.AuthPayload
		if json.Unmarshal(data, &env) != nil || env.Event != models.EventAuth ||
			json.Unmarshal(env.Data, &auth) != nil || auth.Token != acceptToken {
			ws.Close()
			return
		}

		ack, _ := json.Marshal(models.Envelope{Event: models.EventConnected})
		if err := ws.WriteMessage(websocket.TextMessage, ack); err != nil {
			ws.Close()
			return
		}
		accepted <- ws

		go func() {
			for {
				_, frame, err := ws.ReadMessage()
				if err != nil {
					return
				}
				var received models.Envelope
				if json.Unmarshal(frame, &received) == nil {
					inbound <- received
				}
			}
		}()
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, inbound, accepted
}

func wsBaseURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func push(t *testing.T, ws *websocket.Conn, event string, data any) {
	t.Helper()
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		require.NoError(t, err)
		raw = encoded
	}
	frame, err := json.Marshal(models.Envelope{Event: event, Data: raw})
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, frame))
}

type eventRecorder struct {
	mu     sync.Mutex
	events []models.Envelope
}

func (r *eventRecorder) handle(env models.Envelope) {
	r.mu.Lock()
	r.events = append(r.events, env)
	r.mu.Unlock()
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, env := range r.events {
		out[i] = env.Event
	}
	return out
}

func TestConnectDeliversEventsInOrder(t *testing.T) {
	srv, _, accepted := newChatServer(t, "good-token")
	conn := New(wsBaseURL(srv))
	rec := &eventRecorder{}
	conn.OnEvent(rec.handle)

	require.NoError(t, conn.Connect(context.Background(), "good-token"))
	require.True(t, conn.IsLive())
	defer conn.Close()

	server := <-accepted
	push(t, server, models.EventUserOnline, models.UserEventPayload{UserID: 1})
	push(t, server, models.EventTypingStart, models.UserEventPayload{UserID: 1})
	push(t, server, models.EventUserOffline, models.UserEventPayload{UserID: 1})

	require.Eventually(t, func() bool { return len(rec.names()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{
		models.EventUserOnline,
		models.EventTypingStart,
		models.EventUserOffline,
	}, rec.names())
}

func TestHandshakeRejection(t *testing.T) {
	srv, _, _ := newChatServer(t, "good-token")
	conn := New(wsBaseURL(srv))

	err := conn.Connect(context.Background(), "wrong-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHandshakeRejected)
	assert.False(t, conn.IsLive())
}

func TestEmitWhileDisconnectedIsDropped(t *testing.T) {
	conn := New("ws://127.0.0.1:0")
	assert.False(t, conn.Emit(models.EventMessageSend, models.SendMessagePayload{ReceiverID: 2, Content: "x"}))
}

func TestEmitReachesServer(t *testing.T) {
	srv, inbound, _ := newChatServer(t, "tok")
	conn := New(wsBaseURL(srv))
	require.NoError(t, conn.Connect(context.Background(), "tok"))
	defer conn.Close()

	require.True(t, conn.Emit(models.EventMessageSend, models.SendMessagePayload{ReceiverID: 9, Content: "hola"}))

	select {
	case env := <-inbound:
		require.Equal(t, models.EventMessageSend, env.Event)
		var payload models.SendMessagePayload
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		assert.Equal(t, models.ID(9), payload.ReceiverID)
		assert.Equal(t, "hola", payload.Content)
	case <-time.After(time.Second):
		t.Fatal("server did not receive the emitted envelope")
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	srv, _, accepted := newChatServer(t, "tok")
	conn := New(wsBaseURL(srv))
	rec := &eventRecorder{}
	conn.OnEvent(rec.handle)

	require.NoError(t, conn.Connect(context.Background(), "tok"))
	server := <-accepted

	push(t, server, models.EventUserOnline, models.UserEventPayload{UserID: 1})
	require.Eventually(t, func() bool { return len(rec.names()) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	require.False(t, conn.IsLive())

	// Frames pushed after teardown must never reach the handler.
	_ = server.WriteMessage(websocket.TextMessage, mustFrame(models.EventUserOnline, models.UserEventPayload{UserID: 2}))
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, rec.names(), 1)
}

func TestReconnectStartsNewGeneration(t *testing.T) {
	srv, _, accepted := newChatServer(t, "tok")
	conn := New(wsBaseURL(srv))
	rec := &eventRecorder{}
	conn.OnEvent(rec.handle)

	require.NoError(t, conn.Connect(context.Background(), "tok"))
	<-accepted
	firstGen := conn.Generation()
	require.NoError(t, conn.Close())

	require.NoError(t, conn.Connect(context.Background(), "tok"))
	defer conn.Close()
	assert.Greater(t, conn.Generation(), firstGen)
	require.True(t, conn.IsLive())

	server := <-accepted
	push(t, server, models.EventOnlineUsers, models.OnlineUsersPayload{UserIDs: []models.ID{1, 2}})
	require.Eventually(t, func() bool { return len(rec.names()) == 1 }, time.Second, 5*time.Millisecond)
}

func mustFrame(event string, data any) []byte {
	raw, _ := json.Marshal(data)
	frame, _ := json.Marshal(models.Envelope{Event: event, Data: raw})
	return frame
}
