package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chat-client/internal/models"
	"chat-client/internal/rest"
)

type ChatAPIMock struct {
	mock.Mock
}

func (m *ChatAPIMock) Conversations(ctx context.Context) ([]models.Conversation, error) {
	args := m.Called(ctx)
	var list []models.Conversation
	if val := args.Get(0); val != nil {
		list = val.([]models.Conversation)
	}
	return list, args.Error(1)
}

func (m *ChatAPIMock) Thread(ctx context.Context, peerID models.ID) ([]models.Message, error) {
	args := m.Called(ctx, peerID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *ChatAPIMock) UnreadCounts(ctx context.Context) (map[models.ID]int, error) {
	args := m.Called(ctx)
	var counts map[models.ID]int
	if val := args.Get(0); val != nil {
		counts = val.(map[models.ID]int)
	}
	return counts, args.Error(1)
}

var _ rest.ChatAPI = (*ChatAPIMock)(nil)
