package rest

import (
	"context"
	"fmt"
	"net/http"

	"chat-client/internal/models"
)

// Conversations returns the conversation summaries, most recent first.
func (c *Client) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := c.do(ctx, http.MethodGet, "/chat/conversations", "/chat/conversations", nil, &conversations)
	return conversations, err
}

// Thread returns the full message history with one peer in send order.
func (c *Client) Thread(ctx context.Context, peerID models.ID) ([]models.Message, error) {
	var messages []models.Message
	err := c.do(ctx, http.MethodGet, "/chat/conversation/:id", fmt.Sprintf("/chat/conversation/%d", peerID), nil, &messages)
	return messages, err
}

// UnreadCounts returns the per-peer unread message counts.
func (c *Client) UnreadCounts(ctx context.Context) (map[models.ID]int, error) {
	counts := map[models.ID]int{}
	err := c.do(ctx, http.MethodGet, "/chat/unread/count", "/chat/unread/count", nil, &counts)
	return counts, err
}

// UnreadMessages returns all unread messages addressed to the local user.
func (c *Client) UnreadMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := c.do(ctx, http.MethodGet, "/chat/unread", "/chat/unread", nil, &messages)
	return messages, err
}

// MarkRead is the REST fallback for acknowledging a peer's messages.
func (c *Client) MarkRead(ctx context.Context, peerID models.ID) error {
	return c.do(ctx, http.MethodPost, "/chat/mark-read/:id", fmt.Sprintf("/chat/mark-read/%d", peerID), nil, nil)
}

// SendMessage is the REST fallback for sending when the channel is down.
func (c *Client) SendMessage(ctx context.Context, payload models.SendMessagePayload) (models.Message, error) {
	var message models.Message
	err := c.do(ctx, http.MethodPost, "/chat/send", "/chat/send", payload, &message)
	return message, err
}
