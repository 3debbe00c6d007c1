package observability

import "time"

// EventEnvelope wraps telemetry events published to the ops exchange.
type EventEnvelope struct {
	EventType string      `json:"event_type"`
	EventName string      `json:"event_name"`
	EmittedAt time.Time   `json:"emitted_at"`
	Payload   interface{} `json:"payload"`
}

func BuildHeaders(connID, traceID string) map[string]string {
	headers := map[string]string{}
	if connID != "" {
		headers["x-conn-id"] = connID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}
