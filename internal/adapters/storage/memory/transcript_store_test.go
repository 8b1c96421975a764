package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missingred/portfolio/internal/domain"
)

func TestSerialAppendsPreserveOrder(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore()

	sess, err := store.CreateSession(ctx, "chat-1")
	require.NoError(t, err)

	const n = 25
	for i := 0; i < n; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		require.NoError(t, store.AppendMessage(ctx, sess.ID, domain.Message{Role: role, Text: fmt.Sprintf("m%d", i)}))
	}

	got, err := store.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, n)
	for i, m := range got.Messages {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.Text)
	}
}

func TestOverlappingAppendsLoseNothing(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore()
	_, err := store.CreateSession(ctx, "chat-1")
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.AppendMessage(ctx, "chat-1", domain.Message{Role: domain.RoleUser, Text: fmt.Sprintf("m%d", i)})
		}(i)
	}
	wg.Wait()

	got, err := store.GetSession(ctx, "chat-1")
	require.NoError(t, err)
	assert.Len(t, got.Messages, n)

	seen := make(map[string]bool)
	for _, m := range got.Messages {
		assert.False(t, seen[m.Text], "duplicate %s", m.Text)
		seen[m.Text] = true
	}
}

func TestAppendValidation(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore()
	_, err := store.CreateSession(ctx, "chat-1")
	require.NoError(t, err)

	err = store.AppendMessage(ctx, "chat-1", domain.Message{Role: "ia", Text: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	err = store.AppendMessage(ctx, "missing", domain.Message{Role: domain.RoleUser, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = store.CreateSession(ctx, "chat-1")
	assert.ErrorIs(t, err, domain.ErrSessionExists)
}

func TestCreatedAtNeverGoesBackwards(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := []time.Time{base, base.Add(-time.Hour), base.Add(time.Minute)}
	store.now = func() time.Time {
		t := clock[0]
		clock = clock[1:]
		return t
	}

	for _, id := range []domain.SessionID{"a", "b", "c"} {
		_, err := store.CreateSession(ctx, id)
		require.NoError(t, err)
	}

	list, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, domain.SessionID("a"), list[0].ID)
	assert.False(t, list[1].CreatedAt.Before(list[0].CreatedAt))
	assert.False(t, list[2].CreatedAt.Before(list[1].CreatedAt))
}

func TestCreateSessionGeneratesID(t *testing.T) {
	sess, err := NewTranscriptStore().CreateSession(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Empty(t, sess.Messages)
}

func TestWatchSessionsDeliversSnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewTranscriptStore()

	updates, err := store.WatchSessions(ctx)
	require.NoError(t, err)

	initial := <-updates
	assert.Empty(t, initial)

	_, err = store.CreateSession(ctx, "chat-1")
	require.NoError(t, err)
	require.NoError(t, store.AppendMessage(ctx, "chat-1", domain.Message{Role: domain.RoleUser, Text: "hola"}))

	require.Eventually(t, func() bool {
		select {
		case snap := <-updates:
			return len(snap) == 1 && len(snap[0].Messages) == 1
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-updates
		return !open
	}, time.Second, 5*time.Millisecond)
}
