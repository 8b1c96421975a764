package conversation

import (
	"context"
	"sync"

	"github.com/missingred/portfolio/internal/domain"
)

// Selector tracks which transcript the dashboard is showing.
//
// The first non-empty snapshot selects its earliest session. After that the
// selection only changes through Select; if the selected session vanishes
// from a later snapshot, Selected reports nothing rather than moving on.
type Selector struct {
	mu       sync.RWMutex
	sessions []domain.Session
	selected domain.SessionID
}

func NewSelector() *Selector {
	return &Selector{}
}

// Apply records a new snapshot, ordered by creation time.
func (s *Selector) Apply(snapshot []domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = snapshot
	if s.selected != "" || len(snapshot) == 0 {
		return
	}

	earliest := snapshot[0]
	for _, sess := range snapshot[1:] {
		if sess.CreatedAt.Before(earliest.CreatedAt) {
			earliest = sess
		}
	}
	s.selected = earliest.ID
}

func (s *Selector) Select(id domain.SessionID) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
}

func (s *Selector) SelectedID() domain.SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Selected looks the selected id up in the latest snapshot.
func (s *Selector) Selected() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected == "" {
		return domain.Session{}, false
	}
	for _, sess := range s.sessions {
		if sess.ID == s.selected {
			return sess.Clone(), true
		}
	}
	return domain.Session{}, false
}

func (s *Selector) Sessions() []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Session(nil), s.sessions...)
}

// Visible returns the sessions the sidebar lists: those with at least one message.
func (s *Selector) Visible() []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if len(sess.Messages) > 0 {
			out = append(out, sess)
		}
	}
	return out
}

// Run applies every snapshot from updates until the channel closes or ctx
// is done. onUpdate, if set, is called after each Apply.
func (s *Selector) Run(ctx context.Context, updates <-chan []domain.Session, onUpdate func(*Selector)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			s.Apply(snap)
			if onUpdate != nil {
				onUpdate(s)
			}
		}
	}
}
