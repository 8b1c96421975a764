package conversation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missingred/portfolio/internal/adapters/storage/memory"
	"github.com/missingred/portfolio/internal/app/conversation"
	"github.com/missingred/portfolio/internal/domain"
)

func TestCreateSessionAndAppend(t *testing.T) {
	ctx := context.Background()
	svc := conversation.NewService(memory.NewTranscriptStore())

	sess, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	msg, err := svc.Append(ctx, conversation.AppendInput{SessionID: sess.ID, Text: "Hola, soy Daniel"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, msg.Role, "operator replies are tagged as assistant")

	_, err = svc.Append(ctx, conversation.AppendInput{SessionID: sess.ID, Role: domain.RoleUser, Text: "gracias"})
	require.NoError(t, err)

	got, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, domain.RoleUser, got.Messages[1].Role)
}

func TestAppendRejectsEmptyText(t *testing.T) {
	svc := conversation.NewService(memory.NewTranscriptStore())

	_, err := svc.Append(context.Background(), conversation.AppendInput{SessionID: "x", Text: "   "})
	assert.ErrorIs(t, err, conversation.ErrEmptyText)
}

func TestAppendMissingSession(t *testing.T) {
	svc := conversation.NewService(memory.NewTranscriptStore())

	_, err := svc.Append(context.Background(), conversation.AppendInput{SessionID: "missing", Text: "hola"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestWatchMessagesFollowsOneSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.NewTranscriptStore()
	svc := conversation.NewService(store)

	_, err := svc.CreateSession(ctx, "a")
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, "b")
	require.NoError(t, err)

	msgs, err := svc.WatchMessages(ctx, "a")
	require.NoError(t, err)

	first := <-msgs
	assert.Empty(t, first)

	_, err = svc.Append(ctx, conversation.AppendInput{SessionID: "b", Role: domain.RoleUser, Text: "other"})
	require.NoError(t, err)
	_, err = svc.Append(ctx, conversation.AppendInput{SessionID: "a", Role: domain.RoleUser, Text: "mine"})
	require.NoError(t, err)

	select {
	case got := <-msgs:
		require.Len(t, got, 1)
		assert.Equal(t, "mine", got[0].Text)
	case <-time.After(time.Second):
		t.Fatal("no update for session a")
	}
}
