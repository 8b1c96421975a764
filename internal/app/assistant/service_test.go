package assistant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missingred/portfolio/internal/adapters/llm"
	"github.com/missingred/portfolio/internal/app/assistant"
)

func TestRelayFramesPromptWithPreamble(t *testing.T) {
	mock := llm.NewMockLLM()
	conv := assistant.NewConversation(llm.PersonaPreamble + "\n\n")
	svc := assistant.NewService(mock, conv)

	const prompt = "¿Cuáles son tus habilidades?"
	raw, err := svc.Relay(context.Background(), prompt)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	sent := prompts[0]

	assert.True(t, strings.HasPrefix(sent, conv.Preamble()))
	assert.True(t, strings.HasSuffix(sent, prompt))
	assert.Equal(t, conv.Preamble()+"\n"+prompt, sent)
	assert.False(t, strings.HasSuffix(conv.Preamble(), "\n"))
}

func TestRelayRejectsEmptyPrompt(t *testing.T) {
	svc := assistant.NewService(llm.NewMockLLM(), assistant.NewConversation("x"))

	_, err := svc.Relay(context.Background(), "  ")
	assert.ErrorIs(t, err, assistant.ErrEmptyPrompt)
}

func TestRelayPropagatesCompleterError(t *testing.T) {
	mock := llm.NewMockLLM()
	mock.Err = errors.New("dial tcp: timeout")
	svc := assistant.NewService(mock, assistant.NewConversation("x"))

	_, err := svc.Relay(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestConversationWithoutPreamble(t *testing.T) {
	assert.Equal(t, "hola", assistant.NewConversation("").Prompt("hola"))
}
