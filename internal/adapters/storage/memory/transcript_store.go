package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/missingred/portfolio/internal/domain"
)

// TranscriptStore is an in-process domain.TranscriptStore.
// It is NOT persistent and is only suitable for development / local mode.
type TranscriptStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
	order    []domain.SessionID
	subs     map[int]chan []domain.Session
	nextSub  int
	now      func() time.Time
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		sessions: make(map[domain.SessionID]*domain.Session),
		subs:     make(map[int]chan []domain.Session),
		now:      time.Now,
	}
}

func (s *TranscriptStore) CreateSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	if id == "" {
		id = domain.SessionID(uuid.NewString())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		return nil, fmt.Errorf("create %s: %w", id, domain.ErrSessionExists)
	}

	// creation timestamps never go backwards, even if the clock does
	createdAt := s.now()
	if n := len(s.order); n > 0 {
		if prev := s.sessions[s.order[n-1]].CreatedAt; createdAt.Before(prev) {
			createdAt = prev
		}
	}

	sess := &domain.Session{ID: id, CreatedAt: createdAt, Messages: []domain.Message{}}
	s.sessions[id] = sess
	s.order = append(s.order, id)
	s.publishLocked()

	out := sess.Clone()
	return &out, nil
}

func (s *TranscriptStore) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, domain.ErrSessionNotFound)
	}
	out := sess.Clone()
	return &out, nil
}

func (s *TranscriptStore) ListSessions(ctx context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked(), nil
}

// AppendMessage appends under the store lock, so overlapping appends to the
// same session are serialised rather than lost.
func (s *TranscriptStore) AppendMessage(ctx context.Context, id domain.SessionID, msg domain.Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("append %s: %w: %q", id, domain.ErrInvalidRole, msg.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("append %s: %w", id, domain.ErrSessionNotFound)
	}

	sess.Messages = append(sess.Messages, msg)
	s.publishLocked()
	return nil
}

func (s *TranscriptStore) WatchSessions(ctx context.Context) (<-chan []domain.Session, error) {
	ch := make(chan []domain.Session, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *TranscriptStore) snapshotLocked() []domain.Session {
	out := make([]domain.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Clone())
	}
	return out
}

// publishLocked hands every subscriber the latest snapshot. A subscriber
// that has not consumed the previous one only sees the newest.
func (s *TranscriptStore) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
