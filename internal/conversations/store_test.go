package conversations

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-client/internal/models"
)

func fixedList() []models.Conversation {
	return []models.Conversation{
		{PeerID: 10, PeerName: "ana", LastMessage: "hey", UnreadCount: 2},
		{PeerID: 20, PeerName: "ben", LastMessage: "ok", UnreadCount: 0},
	}
}

func TestRefreshReplacesWholesale(t *testing.T) {
	store := NewStore(func(ctx context.Context) ([]models.Conversation, error) {
		return fixedList(), nil
	})

	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, store.All(), 2)

	row, ok := store.Get(10)
	require.True(t, ok)
	assert.Equal(t, "ana", row.PeerName)
}

func TestStaleRefreshDoesNotOverwriteNewer(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	store := NewStore(func(ctx context.Context) ([]models.Conversation, error) {
		if calls.Add(1) == 1 {
			<-release
			return []models.Conversation{{PeerID: 1, LastMessage: "old"}}, nil
		}
		return []models.Conversation{{PeerID: 1, LastMessage: "new"}}, nil
	})

	firstDone := make(chan error, 1)
	go func() { firstDone <- store.Refresh(context.Background()) }()

	// Wait for the first fetch to block, then let a second refresh win.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, store.Refresh(context.Background()))

	close(release)
	require.NoError(t, <-firstDone)

	row, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "new", row.LastMessage, "older delayed response must not win")
}

func TestTouchUpdatesRowInPlace(t *testing.T) {
	store := NewStore(func(ctx context.Context) ([]models.Conversation, error) {
		return fixedList(), nil
	})
	require.NoError(t, store.Refresh(context.Background()))

	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, store.Touch(20, "new message", at, true))

	row, _ := store.Get(20)
	assert.Equal(t, "new message", row.LastMessage)
	assert.Equal(t, at, row.LastMessageDate)
	assert.Equal(t, 1, row.UnreadCount)

	// The untouched row keeps its counters.
	other, _ := store.Get(10)
	assert.Equal(t, 2, other.UnreadCount)
}

func TestTouchUnknownPeerReportsMiss(t *testing.T) {
	store := NewStore(func(ctx context.Context) ([]models.Conversation, error) {
		return fixedList(), nil
	})
	require.NoError(t, store.Refresh(context.Background()))

	assert.False(t, store.Touch(99, "x", time.Now(), true))
}

func TestZeroUnread(t *testing.T) {
	store := NewStore(func(ctx context.Context) ([]models.Conversation, error) {
		return fixedList(), nil
	})
	require.NoError(t, store.Refresh(context.Background()))

	store.ZeroUnread(10)
	row, _ := store.Get(10)
	assert.Equal(t, 0, row.UnreadCount)

	store.ZeroUnread(99) // unknown peer, no-op
}

func TestApplyUnreadCounts(t *testing.T) {
	store := NewStore(func(ctx context.Context) ([]models.Conversation, error) {
		return fixedList(), nil
	})
	require.NoError(t, store.Refresh(context.Background()))

	store.ApplyUnreadCounts(map[models.ID]int{20: 5})
	ana, _ := store.Get(10)
	ben, _ := store.Get(20)
	assert.Equal(t, 0, ana.UnreadCount, "missing from map drops to zero")
	assert.Equal(t, 5, ben.UnreadCount)
}
