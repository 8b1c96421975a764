package conversation_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missingred/portfolio/internal/app/conversation"
	"github.com/missingred/portfolio/internal/domain"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func session(id string, minutes int, texts ...string) domain.Session {
	s := domain.Session{ID: domain.SessionID(id), CreatedAt: t0.Add(time.Duration(minutes) * time.Minute)}
	for _, txt := range texts {
		s.Messages = append(s.Messages, domain.Message{Role: domain.RoleUser, Text: txt})
	}
	return s
}

func TestSelectorPicksEarliestOnFirstNonEmptySnapshot(t *testing.T) {
	sel := conversation.NewSelector()

	sel.Apply(nil)
	_, ok := sel.Selected()
	assert.False(t, ok)
	assert.Empty(t, sel.SelectedID())

	sel.Apply([]domain.Session{session("a", 0, "hola"), session("b", 5)})
	got, ok := sel.Selected()
	require.True(t, ok)
	assert.Equal(t, domain.SessionID("a"), got.ID)
}

func TestSelectorSelectionIsStableAcrossSnapshotOrder(t *testing.T) {
	snapshots := [][]domain.Session{
		{session("b", 1), session("c", 2)},
		{session("a", 0), session("b", 1), session("c", 2)},
		{session("c", 2)},
		{},
		{session("b", 1, "x"), session("c", 2, "y")},
	}

	for trial := 0; trial < 20; trial++ {
		rng := rand.New(rand.NewSource(int64(trial)))
		order := rng.Perm(len(snapshots))

		sel := conversation.NewSelector()
		var first domain.SessionID
		for _, i := range order {
			sel.Apply(snapshots[i])
			if first == "" && len(snapshots[i]) > 0 {
				first = snapshots[i][0].ID
			}
			assert.Equal(t, first, sel.SelectedID(), "trial %d", trial)
		}
	}
}

func TestSelectorDoesNotReselectWhenSessionDisappears(t *testing.T) {
	sel := conversation.NewSelector()
	sel.Apply([]domain.Session{session("a", 0, "hola"), session("b", 1, "hey")})
	require.Equal(t, domain.SessionID("a"), sel.SelectedID())

	sel.Apply([]domain.Session{session("b", 1, "hey")})
	_, ok := sel.Selected()
	assert.False(t, ok)
	assert.Equal(t, domain.SessionID("a"), sel.SelectedID())

	sel.Select("b")
	got, ok := sel.Selected()
	require.True(t, ok)
	assert.Equal(t, "hey", got.Messages[0].Text)
}

func TestSelectorVisibleHidesEmptySessions(t *testing.T) {
	sel := conversation.NewSelector()
	sel.Apply([]domain.Session{session("a", 0), session("b", 1, "hola"), session("c", 2)})

	visible := sel.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, domain.SessionID("b"), visible[0].ID)
	assert.Len(t, sel.Sessions(), 3)
}

func TestSelectorRun(t *testing.T) {
	updates := make(chan []domain.Session, 2)
	updates <- []domain.Session{session("a", 0)}
	updates <- []domain.Session{session("a", 0, "uno")}
	close(updates)

	sel := conversation.NewSelector()
	calls := 0
	err := sel.Run(context.Background(), updates, func(*conversation.Selector) { calls++ })
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	got, ok := sel.Selected()
	require.True(t, ok)
	assert.Len(t, got.Messages, 1)
}
