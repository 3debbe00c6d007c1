package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-client/internal/models"
)

func TestReplayMatchesImpliedSet(t *testing.T) {
	tracker := New()

	tracker.SetOnline(1)
	tracker.SetOnline(2)
	tracker.SetOnline(2) // duplicate, idempotent
	tracker.SetOffline(9) // absent, no-op
	tracker.Snapshot([]models.ID{3, 4, 5})
	tracker.SetOnline(6)
	tracker.SetOffline(4)

	require.Equal(t, []models.ID{3, 5, 6}, tracker.Online())
	assert.True(t, tracker.IsOnline(3))
	assert.False(t, tracker.IsOnline(4))
}

func TestSnapshotReplacesWholesale(t *testing.T) {
	tracker := New()
	tracker.SetOnline(7)
	tracker.SetOnline(9)

	tracker.Snapshot([]models.ID{2})
	require.Equal(t, []models.ID{2}, tracker.Online())

	tracker.Snapshot(nil)
	require.Empty(t, tracker.Online())
}

func TestOfflineThenOnlineAgain(t *testing.T) {
	tracker := New()
	tracker.SetOnline(5)
	tracker.SetOffline(5)
	tracker.SetOffline(5)
	require.False(t, tracker.IsOnline(5))

	tracker.SetOnline(5)
	require.True(t, tracker.IsOnline(5))
}
