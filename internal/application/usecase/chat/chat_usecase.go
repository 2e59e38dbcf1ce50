package chat

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

var tracer = otel.Tracer("chat_usecase")

const (
	Greeting = "Hi there! 👋 I'm your AI Career Buddy powered by advanced AI. Ask me anything about careers, courses, scholarships, colleges, or your future! How can I help you today?"
	Fallback = "I'm sorry, I couldn't process that right now. Please try again! 😊"

	maxMessageLength = 2000
)

const systemContext = `You are CareerPathAI, a friendly and encouraging AI career counselor for Indian students, especially those from rural areas.

Your expertise includes:
- Career guidance for all fields (Engineering, Medical, Commerce, Arts, Science, Design, etc.)
- Course information (B.Tech, MBBS, CA, LLB, BBA, B.Sc, etc.)
- Indian entrance exams (JEE, NEET, CLAT, CAT, GATE, etc.)
- Scholarships (especially Karnataka state scholarships and national scholarships)
- College recommendations in India
- Salary expectations and career prospects
- Learning roadmaps and study tips

Guidelines:
1. Be warm, encouraging, and supportive - like a caring mentor
2. Use simple language that rural students can understand
3. Include specific details like salary ranges (in LPA), duration, top colleges
4. Mention relevant scholarships when discussing courses
5. Use emojis sparingly to be friendly 😊
6. For Karnataka students, mention Karnataka-specific scholarships like Vidyasiri, Arivu, SC/ST Post Matric, etc.
7. Always encourage students and remind them that they can achieve their dreams
8. Keep responses concise but informative (2-4 paragraphs max)
9. If asked about something outside career/education, politely redirect to career topics

Remember: You're talking to young students who may be the first in their family to pursue higher education. Be their guide and cheerleader!`

var quickReplies = []string{
	"Best engineering colleges?",
	"How to become a doctor?",
	"Karnataka scholarships",
	"CA vs MBA salary",
	"Data Science career",
}

var replySchema = service.ResponseSchema{
	Fields:   []string{"response"},
	Required: []string{"response"},
}

type ChatUseCase struct {
	llm    service.LLMService
	logger logger.Logger
}

func NewChatUseCase(llm service.LLMService, log logger.Logger) *ChatUseCase {
	return &ChatUseCase{llm: llm, logger: log}
}

type ChatInput struct {
	Message string
}

type ChatOutput struct {
	Reply  string `json:"reply"`
	Failed bool   `json:"failed"`
}

// Execute relays one question to the model. Model failures are reported as
// the fallback reply with Failed set, never as an error.
func (uc *ChatUseCase) Execute(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	ctx, span := tracer.Start(ctx, "ChatUseCase.Execute")
	defer span.End()

	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return nil, apperror.NewInvalidInput("message is required", nil)
	}
	if len(msg) > maxMessageLength {
		return nil, apperror.NewInvalidInput("message is too long", nil)
	}
	span.SetAttributes(attribute.Int("message.length", len(msg)))

	fields, err := uc.llm.GenerateStructured(ctx, BuildPrompt(msg), replySchema)
	if err != nil {
		err = apperror.NewLLMRequestFailed("structured chat request failed", err)
		span.RecordError(err)
		uc.logger.Warn("LLM request failed, sending fallback reply", zap.Error(err))
		return &ChatOutput{Reply: Fallback, Failed: true}, nil
	}

	return &ChatOutput{Reply: fields["response"]}, nil
}

func BuildPrompt(message string) string {
	var b strings.Builder
	b.WriteString(systemContext)
	b.WriteString("\n\nStudent's question: ")
	b.WriteString(message)
	b.WriteString("\n\nProvide a helpful, encouraging response:")
	return b.String()
}

func QuickReplies() []string {
	out := make([]string, len(quickReplies))
	copy(out, quickReplies)
	return out
}
