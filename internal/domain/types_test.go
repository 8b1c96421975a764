package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missingred/portfolio/internal/domain"
)

func TestParseRole(t *testing.T) {
	cases := map[string]domain.Role{
		"user":      domain.RoleUser,
		" User ":    domain.RoleUser,
		"assistant": domain.RoleAssistant,
		"ia":        domain.RoleAssistant,
		"ai":        domain.RoleAssistant,
		"model":     domain.RoleAssistant,
	}
	for in, want := range cases {
		got, err := domain.ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := domain.ParseRole("system")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestSessionCloneDoesNotShareMessages(t *testing.T) {
	s := domain.Session{ID: "a", Messages: []domain.Message{{Role: domain.RoleUser, Text: "hola"}}}
	c := s.Clone()
	c.Messages[0].Text = "changed"

	assert.Equal(t, "hola", s.Messages[0].Text)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "hola", last.Text)

	_, ok = domain.Session{}.Last()
	assert.False(t, ok)
}
