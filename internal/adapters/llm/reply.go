package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoCandidates = errors.New("response has no candidate text")

type candidateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ReplyText extracts the text of the first candidate from a provider
// response. Provider error bodies are returned as errors.
func ReplyText(raw []byte) (string, error) {
	var resp candidateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("completion provider error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", ErrNoCandidates
	}
	return b.String(), nil
}
