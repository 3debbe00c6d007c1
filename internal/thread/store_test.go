package thread

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-client/internal/models"
)

func msg(id, sender, receiver models.ID, content string) models.Message {
	return models.Message{
		ID:         id,
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		CreatedAt:  time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestLoadReplacesAtomically(t *testing.T) {
	store := NewStore(func(ctx context.Context, peer models.ID) ([]models.Message, error) {
		return []models.Message{msg(1, peer, 99, "a"), msg(2, 99, peer, "b")}, nil
	})

	require.NoError(t, store.Load(context.Background(), 10))
	require.Equal(t, models.ID(10), store.OpenPeer())
	require.Len(t, store.Messages(), 2)

	require.NoError(t, store.Load(context.Background(), 20))
	require.Equal(t, models.ID(20), store.OpenPeer())
	require.Len(t, store.Messages(), 2)
	assert.Equal(t, models.ID(20), store.Messages()[0].SenderID)
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	blockA := make(chan struct{})
	store := NewStore(func(ctx context.Context, peer models.ID) ([]models.Message, error) {
		if peer == 10 {
			<-blockA
			return []models.Message{msg(1, 10, 99, "from A")}, nil
		}
		return []models.Message{msg(2, 20, 99, "from B")}, nil
	})

	loadA := make(chan error, 1)
	go func() { loadA <- store.Load(context.Background(), 10) }()

	require.Eventually(t, func() bool { return store.OpenPeer() == 10 }, time.Second, time.Millisecond)
	require.NoError(t, store.Load(context.Background(), 20))

	close(blockA)
	require.NoError(t, <-loadA)

	// A's late history must not overwrite B's thread: no B->A flicker.
	require.Equal(t, models.ID(20), store.OpenPeer())
	messages := store.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "from B", messages[0].Content)
}

func TestAppendDedupesAndFiltersPeer(t *testing.T) {
	store := NewStore(func(ctx context.Context, peer models.ID) ([]models.Message, error) {
		return nil, nil
	})
	require.NoError(t, store.Load(context.Background(), 10))

	require.True(t, store.Append(10, msg(5, 10, 99, "hi")))
	require.False(t, store.Append(10, msg(5, 10, 99, "hi")), "same id appended twice")
	require.False(t, store.Append(20, msg(6, 20, 99, "other thread")))
	require.Len(t, store.Messages(), 1)
}

func TestAppendWithoutOpenThreadIsNoop(t *testing.T) {
	store := NewStore(func(ctx context.Context, peer models.ID) ([]models.Message, error) {
		return nil, nil
	})
	require.False(t, store.Append(0, msg(1, 1, 2, "x")))
	require.Empty(t, store.Messages())
}

func TestMarkReadByFlipsLocalToPeerOnly(t *testing.T) {
	const me, peer = models.ID(1), models.ID(10)
	store := NewStore(func(ctx context.Context, p models.ID) ([]models.Message, error) {
		return []models.Message{
			msg(1, me, peer, "mine"),
			msg(2, peer, me, "theirs"),
			msg(3, me, peer, "mine too"),
		}, nil
	})
	require.NoError(t, store.Load(context.Background(), peer))

	store.MarkReadBy(peer, me)
	messages := store.Messages()
	assert.True(t, messages[0].Viewed)
	assert.False(t, messages[1].Viewed, "inbound message flags belong to the peer")
	assert.True(t, messages[2].Viewed)

	// Monotonic: a second receipt changes nothing.
	store.MarkReadBy(peer, me)
	assert.True(t, store.Messages()[0].Viewed)
}

func TestMarkReadByOtherPeerIsNoop(t *testing.T) {
	const me, peer = models.ID(1), models.ID(10)
	store := NewStore(func(ctx context.Context, p models.ID) ([]models.Message, error) {
		return []models.Message{msg(1, me, peer, "mine")}, nil
	})
	require.NoError(t, store.Load(context.Background(), peer))

	store.MarkReadBy(20, me)
	assert.False(t, store.Messages()[0].Viewed)
}

func TestClearDropsStateAndInvalidatesLoads(t *testing.T) {
	block := make(chan struct{})
	store := NewStore(func(ctx context.Context, peer models.ID) ([]models.Message, error) {
		<-block
		return []models.Message{msg(1, peer, 99, "late")}, nil
	})

	done := make(chan error, 1)
	go func() { done <- store.Load(context.Background(), 10) }()
	require.Eventually(t, func() bool { return store.OpenPeer() == 10 }, time.Second, time.Millisecond)

	store.Clear()
	close(block)
	require.NoError(t, <-done)

	assert.Equal(t, models.ID(0), store.OpenPeer())
	assert.Empty(t, store.Messages(), "late load after teardown must not write")
}
