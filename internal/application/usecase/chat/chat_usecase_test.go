package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type stubLLM struct {
	fields map[string]string
	err    error
	prompt string
	schema service.ResponseSchema
	calls  int
}

func (s *stubLLM) GenerateChatResponse(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

func (s *stubLLM) GenerateStructured(_ context.Context, prompt string, schema service.ResponseSchema) (map[string]string, error) {
	s.calls++
	s.prompt = prompt
	s.schema = schema
	return s.fields, s.err
}

func TestChat_RelaysResponseField(t *testing.T) {
	llm := &stubLLM{fields: map[string]string{"response": "Start with JEE preparation 😊"}}
	uc := NewChatUseCase(llm, logger.NewNop())

	out, err := uc.Execute(context.Background(), ChatInput{Message: "  How to become an engineer?  "})
	require.NoError(t, err)
	assert.Equal(t, "Start with JEE preparation 😊", out.Reply)
	assert.False(t, out.Failed)

	assert.True(t, strings.HasPrefix(llm.prompt, "You are CareerPathAI"))
	assert.Contains(t, llm.prompt, "\n\nStudent's question: How to become an engineer?\n\n")
	assert.True(t, strings.HasSuffix(llm.prompt, "Provide a helpful, encouraging response:"))
	assert.Equal(t, []string{"response"}, llm.schema.Required)
}

func TestChat_FailureBecomesFallback(t *testing.T) {
	llm := &stubLLM{err: errors.New("deadline exceeded")}
	uc := NewChatUseCase(llm, logger.NewNop())

	out, err := uc.Execute(context.Background(), ChatInput{Message: "Karnataka scholarships"})
	require.NoError(t, err)
	assert.Equal(t, Fallback, out.Reply)
	assert.True(t, out.Failed)
}

func TestChat_RejectsEmptyMessage(t *testing.T) {
	llm := &stubLLM{}
	uc := NewChatUseCase(llm, logger.NewNop())

	_, err := uc.Execute(context.Background(), ChatInput{Message: "   "})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Zero(t, llm.calls)
}

func TestQuickReplies_ReturnsCopy(t *testing.T) {
	replies := QuickReplies()
	require.Len(t, replies, 5)
	replies[0] = "changed"
	assert.Equal(t, "Best engineering colleges?", QuickReplies()[0])
}
