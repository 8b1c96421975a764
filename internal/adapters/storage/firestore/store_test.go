package firestore_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	firestorestore "github.com/missingred/portfolio/internal/adapters/storage/firestore"
	"github.com/missingred/portfolio/internal/domain"
)

// These tests run against the Firestore emulator only.
func newEmulatorStore(t *testing.T) *firestorestore.Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	store, err := firestorestore.NewStore(context.Background(), "portfolio-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStoreRequiresProject(t *testing.T) {
	_, err := firestorestore.NewStore(context.Background(), "")
	require.Error(t, err)
}

func TestFirestoreAppendAndGet(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	id := domain.SessionID("test-" + uuid.NewString())
	_, err := store.CreateSession(ctx, id)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendMessage(ctx, id, domain.Message{Role: domain.RoleUser, Text: fmt.Sprintf("m%d", i)}))
	}

	sess, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	require.Len(t, sess.Messages, 5)
	assert.Equal(t, "m0", sess.Messages[0].Text)
	assert.Equal(t, "m4", sess.Messages[4].Text)
	assert.False(t, sess.CreatedAt.IsZero())

	_, err = store.CreateSession(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionExists)
}

func TestFirestoreConcurrentAppends(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	id := domain.SessionID("test-" + uuid.NewString())
	_, err := store.CreateSession(ctx, id)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.AppendMessage(ctx, id, domain.Message{Role: domain.RoleAssistant, Text: fmt.Sprintf("m%d", i)}))
		}(i)
	}
	wg.Wait()

	sess, err := store.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 5)
}

func TestFirestoreMissingSession(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	_, err := store.GetSession(ctx, "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = store.AppendMessage(ctx, "does-not-exist", domain.Message{Role: domain.RoleUser, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
