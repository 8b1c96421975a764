package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// Conversation carries the persona preamble. It is built once and every
// prompt is framed by it.
type Conversation struct {
	preamble string
}

func NewConversation(preamble string) Conversation {
	return Conversation{preamble: strings.TrimRight(preamble, " \t\r\n")}
}

func (c Conversation) Preamble() string {
	return c.preamble
}

// Prompt joins the preamble and the caller's prompt with a single newline.
func (c Conversation) Prompt(userPrompt string) string {
	if c.preamble == "" {
		return userPrompt
	}
	return c.preamble + "\n" + userPrompt
}

// Service relays visitor prompts to the completion provider.
type Service struct {
	completer domain.Completer
	conv      Conversation
}

func NewService(completer domain.Completer, conv Conversation) *Service {
	return &Service{completer: completer, conv: conv}
}

// Relay forwards the framed prompt and returns the provider's raw response.
func (s *Service) Relay(ctx context.Context, prompt string) (json.RawMessage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	log := observability.LoggerFromContext(ctx).WithField("prompt_len", len(prompt))
	start := time.Now()

	raw, err := s.completer.Complete(ctx, s.conv.Prompt(prompt))
	if err != nil {
		log.WithError(err).Error("completion failed")
		return nil, err
	}

	log.WithField("elapsed_ms", time.Since(start).Milliseconds()).Info("completion relayed")
	return raw, nil
}
