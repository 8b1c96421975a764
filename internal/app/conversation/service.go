package conversation

import (
	"context"
	"errors"
	"strings"

	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

var ErrEmptyText = errors.New("text is required")

// Service is the dashboard's view of the transcript store.
type Service struct {
	store domain.TranscriptStore
}

func NewService(store domain.TranscriptStore) *Service {
	return &Service{store: store}
}

func (s *Service) CreateSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	log := observability.LoggerFromContext(ctx)

	sess, err := s.store.CreateSession(ctx, id)
	if err != nil {
		log.WithError(err).Error("failed to create session")
		return nil, err
	}

	log.WithField("session_id", sess.ID).Info("session created")
	return sess, nil
}

func (s *Service) ListSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).WithError(err).Error("failed to list sessions")
		return nil, err
	}
	return sessions, nil
}

func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.store.GetSession(ctx, id)
}

type AppendInput struct {
	SessionID domain.SessionID
	Role      domain.Role
	Text      string
}

// Append adds one message to a session. An empty role means the operator
// is answering from the dashboard, which is recorded as the assistant.
func (s *Service) Append(ctx context.Context, in AppendInput) (*domain.Message, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyText
	}

	role := in.Role
	if role == "" {
		role = domain.RoleAssistant
	}

	log := observability.LoggerFromContext(ctx).WithField("session_id", in.SessionID).WithField("role", role)

	msg := domain.Message{Role: role, Text: in.Text}
	if err := s.store.AppendMessage(ctx, in.SessionID, msg); err != nil {
		log.WithError(err).Error("failed to append message")
		return nil, err
	}

	log.Info("message appended")
	return &msg, nil
}

// Watch subscribes to every session snapshot.
func (s *Service) Watch(ctx context.Context) (<-chan []domain.Session, error) {
	return s.store.WatchSessions(ctx)
}

// WatchMessages projects the live session snapshots onto the ordered
// messages of one session. A snapshot is only emitted when the session's
// message count changed; nothing is emitted while the session is absent.
func (s *Service) WatchMessages(ctx context.Context, id domain.SessionID) (<-chan []domain.Message, error) {
	snapshots, err := s.store.WatchSessions(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan []domain.Message)
	go func() {
		defer close(out)

		last := -1
		for snap := range snapshots {
			for _, sess := range snap {
				if sess.ID != id || len(sess.Messages) == last {
					continue
				}
				last = len(sess.Messages)

				select {
				case out <- sess.Messages:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
