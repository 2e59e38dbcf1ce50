package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/config"
	"github.com/khoahotran/career-path/pkg/logger"
)

type geminiLLMAdapter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

func NewGeminiLLMAdapter(ctx context.Context, cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.LLM.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	log.Info("Gemini LLM Adapter initialized", zap.String("model", cfg.LLM.Model))
	return &geminiLLMAdapter{client: client, model: cfg.LLM.Model, timeout: cfg.LLM.Timeout, log: log}, nil
}

func (a *geminiLLMAdapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *geminiLLMAdapter) GenerateChatResponse(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return text, nil
}

func (a *geminiLLMAdapter) GenerateStructured(ctx context.Context, prompt string, schema service.ResponseSchema) (map[string]string, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	props := make(map[string]*genai.Schema, len(schema.Fields))
	for _, f := range schema.Fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
			Required:   schema.Required,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content failed: %w", err)
	}

	a.log.Debug("Gemini structured response received", zap.Int("length", len(resp.Text())))
	return decodeFields(resp.Text(), schema)
}
