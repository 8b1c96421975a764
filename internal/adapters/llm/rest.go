package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/missingred/portfolio/internal/observability"
)

// RESTClient calls the Gemini generateContent REST endpoint and hands the
// response body back untouched, whatever its status code.
type RESTClient struct {
	http    *resty.Client
	apiKey  string
	model   string
	baseURL string
}

func NewRESTClient(baseURL, apiKey, model string) (*RESTClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &RESTClient{
		http:    resty.New(),
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Complete implements domain.Completer.
func (c *RESTClient) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	body := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		Post(fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if resp.IsError() {
		observability.LoggerFromContext(ctx).
			WithField("status", resp.StatusCode()).
			Warn("gemini returned an error response")
	}

	raw := resp.Body()
	if !json.Valid(raw) {
		return nil, fmt.Errorf("gemini returned non-JSON body (status %d)", resp.StatusCode())
	}
	return json.RawMessage(raw), nil
}
