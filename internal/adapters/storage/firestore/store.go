package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

const chatsCollection = "chats"

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) chatsCol() *firestore.CollectionRef {
	return s.client.Collection(chatsCollection)
}

func (s *Store) chatDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.chatsCol().Doc(string(id))
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type chatDoc struct {
	CreatedAt time.Time    `firestore:"createdAt"`
	Messages  []messageDoc `firestore:"messages"`
}

type messageDoc struct {
	Role string `firestore:"role"`
	Text string `firestore:"text"`
}

func toSession(snap *firestore.DocumentSnapshot) (domain.Session, error) {
	var doc chatDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.Session{}, fmt.Errorf("decode chatDoc %s: %w", snap.Ref.ID, err)
	}

	msgs := make([]domain.Message, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		role, err := domain.ParseRole(m.Role)
		if err != nil {
			// legacy rows with unknown tags are shown as assistant output
			role = domain.RoleAssistant
		}
		msgs = append(msgs, domain.Message{Role: role, Text: m.Text})
	}

	return domain.Session{
		ID:        domain.SessionID(snap.Ref.ID),
		CreatedAt: doc.CreatedAt,
		Messages:  msgs,
	}, nil
}

func collect(iter *firestore.DocumentIterator) ([]domain.Session, error) {
	defer iter.Stop()

	var out []domain.Session
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, err
		}

		sess, err := toSession(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

// ─────────────────────────────────────────
// TranscriptStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	ref := s.chatsCol().NewDoc()
	if id != "" {
		ref = s.chatDoc(id)
	}

	_, err := ref.Create(ctx, map[string]interface{}{
		"createdAt": firestore.ServerTimestamp,
		"messages":  []interface{}{},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("firestore CreateSession %s: %w", ref.ID, domain.ErrSessionExists)
		}
		return nil, fmt.Errorf("firestore CreateSession: %w", err)
	}

	return s.GetSession(ctx, domain.SessionID(ref.ID))
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	snap, err := s.chatDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("firestore GetSession %s: %w", id, domain.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	sess, err := toSession(snap)
	if err != nil {
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}
	return &sess, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]domain.Session, error) {
	out, err := collect(s.chatsCol().OrderBy("createdAt", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("firestore ListSessions: %w", err)
	}
	return out, nil
}

// AppendMessage reads the current messages and writes the extended array
// back inside a transaction, so a concurrent append makes this one retry
// instead of overwriting it.
func (s *Store) AppendMessage(ctx context.Context, id domain.SessionID, msg domain.Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("firestore AppendMessage %s: %w: %q", id, domain.ErrInvalidRole, msg.Role)
	}

	ref := s.chatDoc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var doc chatDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("decode chatDoc %s: %w", id, err)
		}

		messages := append(doc.Messages, messageDoc{Role: string(msg.Role), Text: msg.Text})
		return tx.Update(ref, []firestore.Update{{Path: "messages", Value: messages}})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("firestore AppendMessage %s: %w", id, domain.ErrSessionNotFound)
		}
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) WatchSessions(ctx context.Context) (<-chan []domain.Session, error) {
	it := s.chatsCol().OrderBy("createdAt", firestore.Asc).Snapshots(ctx)
	out := make(chan []domain.Session)
	log := observability.LoggerFromContext(ctx).WithField("collection", chatsCollection)

	go func() {
		defer close(out)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled && !errors.Is(err, context.Canceled) && err != iterator.Done {
					log.WithError(err).Error("firestore snapshot listener stopped")
				}
				return
			}

			sessions, err := collect(snap.Documents)
			if err != nil {
				log.WithError(err).Error("failed to decode snapshot")
				return
			}

			select {
			case out <- sessions:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
