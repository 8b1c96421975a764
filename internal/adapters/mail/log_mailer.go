package mail

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

// LogMailer logs emails instead of sending them. Used in local mode.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (LogMailer) Send(ctx context.Context, email domain.Email) error {
	observability.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"to":          email.To,
		"cc":          email.Cc,
		"subject":     email.Subject,
		"attachments": len(email.Attachments),
	}).Info("email not sent (log mailer)")
	return nil
}

// Recorder keeps every email in memory. Err, when set, is returned by Send.
type Recorder struct {
	mu   sync.Mutex
	sent []domain.Email
	Err  error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(ctx context.Context, email domain.Email) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, email)
	return nil
}

func (r *Recorder) Sent() []domain.Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Email(nil), r.sent...)
}
