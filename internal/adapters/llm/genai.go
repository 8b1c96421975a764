package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type GenAIClient struct {
	client    *genai.Client
	modelName string
}

// NewGenAIClient creates a Completer backed by the Gemini API SDK.
// An empty baseURL keeps the SDK's default endpoint.
func NewGenAIClient(ctx context.Context, baseURL, apiKey, modelName string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(baseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating GenAI client: %w", err)
	}

	return &GenAIClient{client: client, modelName: modelName}, nil
}

// Complete implements domain.Completer. The SDK response is marshalled back
// to JSON, which keeps the provider's candidates/content/parts shape. The
// SDK's own transport metadata (upstream response headers) is not part of
// the provider body and is dropped.
func (g *GenAIClient) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("genai generate content: %w", err)
	}

	res.SDKHTTPResponse = nil

	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode genai response: %w", err)
	}
	return raw, nil
}
