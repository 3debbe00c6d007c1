// Package telemetry emits session lifecycle audit events.
package telemetry

import (
	"context"
	"log"
	"time"

	"chat-client/internal/models"
	"chat-client/internal/observability"
)

// AuditEmitter publishes audit envelopes for session-level actions
// (login, connect, disconnect). Nil emitter and nil publisher are no-ops.
type AuditEmitter struct {
	publisher   observability.Publisher
	routingKey  string
	environment string
}

// AuditEnvelope is the audit event wire format.
type AuditEnvelope struct {
	SchemaVersion int          `json:"schema_version"`
	EventType     string       `json:"event_type"`
	OccurredAt    string       `json:"occurred_at"`
	Service       string       `json:"service"`
	Environment   string       `json:"environment"`
	UserID        *models.ID   `json:"user_id,omitempty"`
	Payload       AuditPayload `json:"payload"`
}

// AuditPayload is the event body.
type AuditPayload struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func NewAuditEmitter(publisher observability.Publisher, routingKey, environment string) *AuditEmitter {
	return &AuditEmitter{
		publisher:   publisher,
		routingKey:  routingKey,
		environment: environment,
	}
}

// Emit publishes one audit event. Failures are logged, never propagated.
func (e *AuditEmitter) Emit(ctx context.Context, level, text string, userID *models.ID) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := AuditEnvelope{
		SchemaVersion: 1,
		EventType:     "audit_log",
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       "chat-client",
		Environment:   e.environment,
		UserID:        userID,
		Payload: AuditPayload{
			Level: level,
			Text:  text,
		},
	}

	if err := e.publisher.PublishJSON(ctx, e.routingKey, envelope, nil); err != nil {
		observability.IncAMQPPublishError()
		log.Printf("audit publish failed: %v", err)
	}
}
