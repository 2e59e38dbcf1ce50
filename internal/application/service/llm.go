package service

import (
	"context"
)

// ResponseSchema asks the model for a JSON object whose listed fields are all strings.
type ResponseSchema struct {
	Fields   []string
	Required []string
}

type LLMService interface {
	GenerateChatResponse(ctx context.Context, prompt string) (string, error)
	// GenerateStructured returns the string fields of the object the model produced.
	GenerateStructured(ctx context.Context, prompt string, schema ResponseSchema) (map[string]string, error)
}
