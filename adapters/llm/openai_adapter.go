package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/config"
	"github.com/khoahotran/career-path/pkg/logger"
)

type openAILLMAdapter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

// NewOpenAILLMAdapter talks to any OpenAI-compatible endpoint (OpenAI, Ollama, vLLM).
func NewOpenAILLMAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.LLM.Host == "" {
		return nil, fmt.Errorf("LLM host is not configured")
	}

	key := cfg.LLM.APIKey
	if key == "" {
		key = "dummy-key"
	}
	clientCfg := openai.DefaultConfig(key)
	clientCfg.BaseURL = cfg.LLM.Host

	log.Info("OpenAI-compatible LLM Adapter initialized", zap.String("host", cfg.LLM.Host), zap.String("model", cfg.LLM.Model))
	return &openAILLMAdapter{client: openai.NewClientWithConfig(clientCfg), model: cfg.LLM.Model, timeout: cfg.LLM.Timeout, log: log}, nil
}

func (a *openAILLMAdapter) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no chat choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *openAILLMAdapter) GenerateChatResponse(ctx context.Context, prompt string) (string, error) {
	return a.complete(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

func (a *openAILLMAdapter) GenerateStructured(ctx context.Context, prompt string, schema service.ResponseSchema) (map[string]string, error) {
	instruction := fmt.Sprintf("Reply with a JSON object with the string fields: %s.", strings.Join(schema.Fields, ", "))
	content, err := a.complete(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeFields(content, schema)
}
