package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

var (
	ErrMessageRequired = errors.New("Mensaje requerido")
	ErrEmailRequired   = errors.New("Email requerido")
	ErrCVNotFound      = errors.New("No se encontró la hoja de vida")
)

const (
	notProvided    = "(no proporcionado)"
	contactSubject = "Daniel!, Nuevo mensaje desde tú chat IA del portafolio"
	cvSubject      = "Hola!, aquí está la hoja de vida de Daniel Rodríguez"
	cvFilename     = "Hoja-de-vida-Daniel.pdf"
)

type Config struct {
	OperatorEmail string // receives contact messages, cc'd on CVs
	NoReplyEmail  string // sender when the visitor gave no address
	CVPath        string
}

// Service formats transactional emails and hands them to the Mailer.
// Calls are not deduplicated: each one sends a new email.
type Service struct {
	mailer domain.Mailer
	cfg    Config
}

func NewService(mailer domain.Mailer, cfg Config) *Service {
	return &Service{mailer: mailer, cfg: cfg}
}

type ContactInput struct {
	Message string
	Email   string
	Name    string
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

// ContactBody renders the plain-text body of a contact email.
func ContactBody(in ContactInput) string {
	return fmt.Sprintf("Nombre: %s\nCorreo: %s\nMensaje: %s",
		orNotProvided(in.Name), orNotProvided(in.Email), in.Message)
}

// SendContact relays a visitor's message to the operator.
func (s *Service) SendContact(ctx context.Context, in ContactInput) error {
	if strings.TrimSpace(in.Message) == "" {
		return ErrMessageRequired
	}

	from := s.cfg.NoReplyEmail
	if in.Email != "" {
		from = in.Email
	}

	email := domain.Email{
		From:     from,
		To:       []string{s.cfg.OperatorEmail},
		ReplyTo:  in.Email,
		Subject:  contactSubject,
		TextBody: ContactBody(in),
	}

	log := observability.LoggerFromContext(ctx).WithField("kind", "contact")
	if err := s.mailer.Send(ctx, email); err != nil {
		log.WithError(err).Error("failed to send contact email")
		return err
	}
	log.Info("contact email sent")
	return nil
}

// SendCV emails the CV document to the given address, cc the operator.
func (s *Service) SendCV(ctx context.Context, to string) error {
	if strings.TrimSpace(to) == "" {
		return ErrEmailRequired
	}

	log := observability.LoggerFromContext(ctx).WithField("kind", "cv")

	cv, err := os.ReadFile(s.cfg.CVPath)
	if err != nil {
		log.WithError(err).WithField("path", s.cfg.CVPath).Error("cv document unreadable")
		return fmt.Errorf("%w: %v", ErrCVNotFound, err)
	}

	email := domain.Email{
		From:        s.cfg.OperatorEmail,
		To:          []string{to},
		Cc:          []string{s.cfg.OperatorEmail},
		Subject:     cvSubject,
		HTMLBody:    cvTemplate,
		Attachments: []domain.Attachment{{Filename: cvFilename, Content: cv}},
	}

	if err := s.mailer.Send(ctx, email); err != nil {
		log.WithError(err).Error("failed to send cv email")
		return err
	}
	log.Info("cv email sent")
	return nil
}
