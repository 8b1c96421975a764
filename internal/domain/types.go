package domain

import (
	"errors"
	"strings"
	"time"
)

type SessionID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrInvalidRole     = errors.New("invalid message role")
)

// ParseRole normalises a stored role tag. Older transcripts were written
// with "ia" or "ai" for the assistant side.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "human":
		return RoleUser, nil
	case "assistant", "ia", "ai", "model":
		return RoleAssistant, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type Timestamp = time.Time
