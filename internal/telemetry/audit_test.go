package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-client/internal/mocks"
	"chat-client/internal/models"
)

func TestEmitBuildsEnvelope(t *testing.T) {
	publisher := &mocks.PublisherMock{}
	publisher.On("PublishJSON", mock.Anything, "audit_logs.chat_client", mock.Anything, mock.Anything).Return(nil)

	emitter := NewAuditEmitter(publisher, "audit_logs.chat_client", "test")
	userID := models.ID(7)
	emitter.Emit(context.Background(), "INFO", "session started", &userID)

	require.Len(t, publisher.Calls, 1)
	envelope, ok := publisher.Calls[0].Arguments.Get(2).(AuditEnvelope)
	require.True(t, ok)
	assert.Equal(t, 1, envelope.SchemaVersion)
	assert.Equal(t, "audit_log", envelope.EventType)
	assert.Equal(t, "chat-client", envelope.Service)
	assert.Equal(t, "test", envelope.Environment)
	assert.Equal(t, &userID, envelope.UserID)
	assert.Equal(t, "INFO", envelope.Payload.Level)
	assert.NotEmpty(t, envelope.OccurredAt)
}

func TestEmitIsNilSafe(t *testing.T) {
	var emitter *AuditEmitter
	emitter.Emit(context.Background(), "INFO", "ignored", nil)

	emitter = NewAuditEmitter(nil, "key", "test")
	emitter.Emit(context.Background(), "INFO", "ignored", nil)
}
