package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MockLLM answers with a canned response in the provider's JSON shape and
// remembers every prompt it was given.
type MockLLM struct {
	mu      sync.Mutex
	prompts []string
	Err     error
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	question := prompt
	if i := strings.LastIndex(prompt, "\n"); i >= 0 {
		question = prompt[i+1:]
	}
	return NewCandidateResponse(fmt.Sprintf("Gracias por preguntar: %q. Daniel es desarrollador full-stack.", question)), nil
}

// Prompts returns every prompt received so far.
func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// NewCandidateResponse builds a single-candidate response body.
func NewCandidateResponse(text string) json.RawMessage {
	raw, _ := json.Marshal(candidateResponse{
		Candidates: []candidate{{Content: content{Role: "model", Parts: []part{{Text: text}}}}},
	})
	return raw
}
