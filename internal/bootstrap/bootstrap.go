// Package bootstrap builds the adapters selected by the configuration.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/missingred/portfolio/internal/adapters/llm"
	"github.com/missingred/portfolio/internal/adapters/mail"
	firestorestore "github.com/missingred/portfolio/internal/adapters/storage/firestore"
	memstore "github.com/missingred/portfolio/internal/adapters/storage/memory"
	mongostore "github.com/missingred/portfolio/internal/adapters/storage/mongo"
	"github.com/missingred/portfolio/internal/config"
	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func NewCompleter(ctx context.Context, cfg *config.Config) (domain.Completer, error) {
	log := observability.Logger()

	switch cfg.LLMBackend {
	case "rest":
		log.WithField("model", cfg.GeminiModel).Info("[LLM] using Gemini REST client")
		return llm.NewRESTClient(cfg.GeminiURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "genai":
		log.WithField("model", cfg.GeminiModel).Info("[LLM] using GenAI SDK client")
		return llm.NewGenAIClient(ctx, cfg.GeminiURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "mock":
		log.Info("[LLM] using MOCK client")
		return llm.NewMockLLM(), nil
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", cfg.LLMBackend)
	}
}

// NewTranscriptStore returns the store and a closer that releases its
// connection. The closer is never nil.
func NewTranscriptStore(ctx context.Context, cfg *config.Config) (domain.TranscriptStore, io.Closer, error) {
	log := observability.Logger()

	switch cfg.StorageBackend {
	case "firestore":
		log.WithField("project", cfg.GCPProjectID).Info("[STORE] using Firestore storage")
		s, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return s, s, nil
	case "mongo":
		log.WithField("database", cfg.MongoDatabase).Info("[STORE] using MongoDB storage")
		s, err := mongostore.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return s, s, nil
	case "memory":
		log.Info("[STORE] using in-memory storage")
		return memstore.NewTranscriptStore(), nopCloser{}, nil
	default:
		return nil, nopCloser{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func NewMailer(cfg *config.Config) (domain.Mailer, error) {
	switch cfg.MailBackend {
	case "smtp":
		return mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.GmailAppPassword)
	case "log":
		observability.Logger().Info("[MAIL] using log mailer, emails are not delivered")
		return mail.NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unknown mail backend %q", cfg.MailBackend)
	}
}
