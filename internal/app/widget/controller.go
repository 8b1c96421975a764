package widget

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

type State int

const (
	StateClosed State = iota
	StateOpenEmpty
	StateOpenWithHistory
	StateSending
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenEmpty:
		return "open-empty"
	case StateOpenWithHistory:
		return "open-with-history"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

var (
	ErrClosed       = errors.New("chat widget is closed")
	ErrEmptyInput   = errors.New("nothing to send")
	ErrSendInFlight = errors.New("a message is already being sent")
)

const (
	Greeting     = "Hola!, mi nombre es NexIA una creación de Daniel. Estoy aquí para ayudarte."
	ErrorMessage = "Lo siento, no pude obtener una respuesta en este momento. Inténtalo de nuevo más tarde."
)

var placeholders = []string{
	"How can I help you?",
	"¿Qué quieres saber de mí?",
	"Lenguajes que más utiliza Daniel",
	"Pregúntame sobre proyectos o experiencia",
	"¿Quieres ver el CV de Daniel?",
}

// Placeholder returns the input hint for the given rotation tick.
func Placeholder(tick int) string {
	if tick < 0 {
		tick = -tick
	}
	return placeholders[tick%len(placeholders)]
}

// Asker sends one prompt and returns the assistant's reply text.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Controller holds the floating chat's local state. The transcript lives
// only here; nothing is persisted.
type Controller struct {
	asker Asker

	mu       sync.Mutex
	open     bool
	input    string
	messages []domain.Message
	sending  bool
}

func NewController(asker Asker) *Controller {
	return &Controller{asker: asker}
}

func (c *Controller) Open() {
	c.mu.Lock()
	c.open = true
	c.mu.Unlock()
}

func (c *Controller) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.input = text
	c.mu.Unlock()
}

func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

func (c *Controller) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.messages...)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case !c.open:
		return StateClosed
	case c.sending:
		return StateSending
	case strings.TrimSpace(c.input) != "" || len(c.messages) > 0:
		return StateOpenWithHistory
	default:
		return StateOpenEmpty
	}
}

// Submit sends the current input. The user message is appended before the
// call and kept even if the call fails; exactly one assistant message
// (reply or error notice) follows. Submit blocks until the Asker returns.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrClosed
	}
	text := strings.TrimSpace(c.input)
	if text == "" {
		c.mu.Unlock()
		return ErrEmptyInput
	}
	if c.sending {
		c.mu.Unlock()
		return ErrSendInFlight
	}
	c.messages = append(c.messages, domain.Message{Role: domain.RoleUser, Text: text})
	c.input = ""
	c.sending = true
	c.mu.Unlock()

	reply, err := c.asker.Ask(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending = false

	if err != nil {
		observability.LoggerFromContext(ctx).WithError(err).Warn("assistant request failed")
		c.messages = append(c.messages, domain.Message{Role: domain.RoleAssistant, Text: ErrorMessage})
		return err
	}
	c.messages = append(c.messages, domain.Message{Role: domain.RoleAssistant, Text: reply})
	return nil
}
