package llm

import (
	"context"
	"fmt"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/config"
	"github.com/khoahotran/career-path/pkg/logger"
)

// NewLLMService picks the adapter named by llm.provider.
func NewLLMService(ctx context.Context, cfg config.Config, log logger.Logger) (service.LLMService, error) {
	switch cfg.LLM.Provider {
	case "gemini", "":
		return NewGeminiLLMAdapter(ctx, cfg, log)
	case "openai", "ollama":
		return NewOpenAILLMAdapter(cfg, log)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
