// Package transport owns the websocket connection to the chat channel.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"chat-client/internal/models"
	"chat-client/internal/observability"
)

// ErrHandshakeRejected is returned when the server refuses the credential
// presented in the auth frame.
var ErrHandshakeRejected = errors.New("chat handshake rejected")

const handshakeAckTimeout = 10 * time.Second

// Handler receives inbound envelopes in delivery order.
type Handler func(models.Envelope)

// StateFunc observes liveness transitions.
type StateFunc func(live bool, reason string)

// Conn manages exactly one chat channel connection at a time. Each
// successful Connect starts a new generation; frames and callbacks from
// older generations are discarded, so nothing is delivered after teardown.
type Conn struct {
	url    string
	dialer *websocket.Dialer

	mu          sync.Mutex
	ws          *websocket.Conn
	live        bool
	gen         int
	connID      string
	connectedAt time.Time
	handler     Handler
	onState     StateFunc
}

// New builds a Conn dialing baseURL (ws:// or wss://) on the /chat channel.
func New(baseURL string) *Conn {
	return &Conn{
		url:    baseURL + "/chat",
		dialer: &websocket.Dialer{HandshakeTimeout: handshakeAckTimeout},
	}
}

// OnEvent installs the inbound event handler. Set it before Connect.
func (c *Conn) OnEvent(h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

// OnStateChange installs the liveness observer.
func (c *Conn) OnStateChange(f StateFunc) {
	c.mu.Lock()
	c.onState = f
	c.mu.Unlock()
}

// IsLive reports whether outbound actions would currently be delivered.
func (c *Conn) IsLive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Generation identifies the current connection instance.
func (c *Conn) Generation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Connect dials the channel and authenticates by sending the credential as
// the first frame after the upgrade. The server answers with a connected
// envelope or closes the socket. A live connection is superseded first.
func (c *Conn) Connect(ctx context.Context, token string) error {
	ctx, span := otel.Tracer("chat-client/transport").Start(ctx, "ws.handshake")
	defer span.End()

	c.mu.Lock()
	if c.live {
		c.teardownLocked("superseded")
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	ws, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial chat channel: %w", err)
	}

	auth, err := json.Marshal(models.AuthPayload{Token: token})
	if err != nil {
		ws.Close()
		return err
	}
	frame, _ := json.Marshal(models.Envelope{Event: models.EventAuth, Data: auth})
	if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
		ws.Close()
		return fmt.Errorf("send auth frame: %w", err)
	}

	_ = ws.SetReadDeadline(time.Now().Add(handshakeAckTimeout))
	_, ack, err := ws.ReadMessage()
	if err != nil {
		ws.Close()
		return fmt.Errorf("%w: %v", ErrHandshakeRejected, err)
	}
	var env models.Envelope
	if err := json.Unmarshal(ack, &env); err != nil || env.Event != models.EventConnected {
		ws.Close()
		return ErrHandshakeRejected
	}
	_ = ws.SetReadDeadline(time.Time{})

	connID := uuid.NewString()
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		ws.Close()
		return errors.New("connection superseded during handshake")
	}
	c.ws = ws
	c.live = true
	c.connID = connID
	c.connectedAt = time.Now()
	onState := c.onState
	c.mu.Unlock()

	observability.SetWSActive(true)
	observability.IncWSEvent("in", models.EventConnected)
	c.publishLifecycle(ctx, "ws_connect", "", connID, 0)
	log.Printf("chat channel connected conn_id=%s", connID)
	if onState != nil {
		onState(true, "")
	}

	go c.readLoop(ws, gen)
	return nil
}

// Emit sends one envelope. It reports false, without error, when the
// connection is not live: dropped actions are a documented design choice
// surfaced through the liveness indicator, not per-action failures.
func (c *Conn) Emit(event string, data any) bool {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			log.Printf("chat emit %s: encode payload: %v", event, err)
			return false
		}
		raw = encoded
	}
	frame, err := json.Marshal(models.Envelope{Event: event, Data: raw})
	if err != nil {
		return false
	}

	c.mu.Lock()
	if !c.live || c.ws == nil {
		c.mu.Unlock()
		observability.IncDroppedAction(event)
		return false
	}
	writeErr := c.ws.WriteMessage(websocket.TextMessage, frame)
	if writeErr == nil {
		c.mu.Unlock()
		observability.IncWSEvent("out", event)
		return true
	}
	connID, elapsed := c.teardownLocked(writeErr.Error())
	onState := c.onState
	c.mu.Unlock()

	log.Printf("chat channel write error: %v", writeErr)
	observability.SetWSActive(false)
	c.publishLifecycle(context.Background(), "ws_error", writeErr.Error(), connID, elapsed)
	if onState != nil {
		onState(false, writeErr.Error())
	}
	return false
}

// Close tears the connection down deterministically. Frames already in
// flight are discarded by the generation guard.
func (c *Conn) Close() error {
	c.mu.Lock()
	if !c.live {
		c.gen++
		c.mu.Unlock()
		return nil
	}
	connID, elapsed := c.teardownLocked("closed")
	onState := c.onState
	c.mu.Unlock()

	observability.SetWSActive(false)
	c.publishLifecycle(context.Background(), "ws_disconnect", "closed", connID, elapsed)
	log.Printf("chat channel closed conn_id=%s", connID)
	if onState != nil {
		onState(false, "closed")
	}
	return nil
}

// teardownLocked invalidates the current generation and closes the socket.
// Callers hold c.mu.
func (c *Conn) teardownLocked(reason string) (connID string, elapsedMS int64) {
	c.gen++
	c.live = false
	connID = c.connID
	if !c.connectedAt.IsZero() {
		elapsedMS = time.Since(c.connectedAt).Milliseconds()
	}
	if c.ws != nil {
		_ = c.ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
		_ = c.ws.Close()
		c.ws = nil
	}
	return connID, elapsedMS
}

func (c *Conn) readLoop(ws *websocket.Conn, gen int) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.dropped(gen, err)
			return
		}

		var env models.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("chat channel: malformed frame: %v", err)
			continue
		}

		c.mu.Lock()
		stale := c.gen != gen || !c.live
		handler := c.handler
		c.mu.Unlock()
		if stale {
			return
		}

		observability.IncWSEvent("in", env.Event)
		if handler != nil {
			handler(env)
		}
	}
}

// dropped handles an unexpected read failure for generation gen.
func (c *Conn) dropped(gen int, err error) {
	c.mu.Lock()
	if c.gen != gen || !c.live {
		// Close or a newer Connect already tore this generation down.
		c.mu.Unlock()
		return
	}
	c.live = false
	connID := c.connID
	elapsed := time.Since(c.connectedAt).Milliseconds()
	c.ws = nil
	onState := c.onState
	c.mu.Unlock()

	reason := err.Error()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Printf("chat channel closed by server conn_id=%s", connID)
	} else {
		log.Printf("chat channel dropped conn_id=%s: %v", connID, err)
	}
	observability.SetWSActive(false)
	c.publishLifecycle(context.Background(), "ws_error", reason, connID, elapsed)
	if onState != nil {
		onState(false, reason)
	}
}

func (c *Conn) publishLifecycle(ctx context.Context, name, reason, connID string, elapsedMS int64) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"channel":     "chat",
			"event":       name,
			"conn_id":     connID,
			"duration_ms": elapsedMS,
			"reason":      reason,
		},
	}
	_ = observability.PublishEvent(ctx, "ws_events.chat", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: name,
		Payload:   payload,
	}, observability.BuildHeaders(connID, ""))
}
