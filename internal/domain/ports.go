package domain

import (
	"context"
	"encoding/json"
)

// Completer turns a prompt into the completion provider's native JSON response.
type Completer interface {
	Complete(ctx context.Context, prompt string) (json.RawMessage, error)
}

// TranscriptStore persists sessions and their ordered messages.
type TranscriptStore interface {
	CreateSession(ctx context.Context, id SessionID) (*Session, error)
	GetSession(ctx context.Context, id SessionID) (*Session, error)
	// ListSessions returns every session ordered by creation time, oldest first.
	ListSessions(ctx context.Context) ([]Session, error)
	AppendMessage(ctx context.Context, id SessionID, msg Message) error
	// WatchSessions emits a full ordered snapshot on every change, starting
	// with the current state. The channel is closed when ctx is done.
	WatchSessions(ctx context.Context) (<-chan []Session, error)
}

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename string
	Content  []byte
}

// Email is a single outgoing message handed to the mail provider.
type Email struct {
	From        string
	To          []string
	Cc          []string
	ReplyTo     string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// Mailer delivers an email through the configured provider.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
