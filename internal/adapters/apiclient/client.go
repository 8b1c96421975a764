package apiclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/missingred/portfolio/internal/adapters/llm"
	"github.com/missingred/portfolio/internal/domain"
)

// Client talks to a running portfolio API.
type Client struct {
	http *resty.Client
}

func New(baseURL, adminToken string) *Client {
	c := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))
	if adminToken != "" {
		c.SetAuthToken(adminToken)
	}
	return &Client{http: c}
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func responseError(resp *resty.Response) error {
	if env, ok := resp.Error().(*errorEnvelope); ok && env.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status(), env.Error)
	}
	return fmt.Errorf("%s", resp.Status())
}

// Ask posts a prompt to the assistant relay and returns the reply text.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"prompt": prompt}).
		SetError(&errorEnvelope{}).
		Post("/api/gemini")
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	if resp.IsError() {
		return "", responseError(resp)
	}
	return llm.ReplyText(resp.Body())
}

type messageDTO struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type sessionDTO struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	Messages  []messageDTO `json:"messages"`
}

func (d sessionDTO) toDomain() domain.Session {
	s := domain.Session{ID: domain.SessionID(d.ID), CreatedAt: d.CreatedAt}
	for _, m := range d.Messages {
		role, err := domain.ParseRole(m.Role)
		if err != nil {
			role = domain.RoleAssistant
		}
		s.Messages = append(s.Messages, domain.Message{Role: role, Text: m.Text})
	}
	return s
}

func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var out struct {
		Chats []sessionDTO `json:"chats"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(&errorEnvelope{}).Get("/api/chats")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if resp.IsError() {
		return nil, responseError(resp)
	}

	sessions := make([]domain.Session, 0, len(out.Chats))
	for _, d := range out.Chats {
		sessions = append(sessions, d.toDomain())
	}
	return sessions, nil
}

func (c *Client) Append(ctx context.Context, id domain.SessionID, text string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", string(id)).
		SetBody(map[string]string{"text": text}).
		SetError(&errorEnvelope{}).
		Post("/api/chats/{id}/messages")
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	if resp.IsError() {
		return responseError(resp)
	}
	return nil
}
