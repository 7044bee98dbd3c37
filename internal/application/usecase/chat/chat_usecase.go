package chat

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const (
	DefaultTemperature float32 = 0.7

	FallbackUnavailable = "I'm having trouble connecting to my AI brain right now. Try again later!"
	FallbackEmpty       = "I'm sorry, I couldn't generate a response."
)

var tracer = otel.Tracer("chat_usecase")

type ChatUseCase struct {
	llm         service.LLMService
	temperature float32
	logger      logger.Logger
}

// NewChatUseCase uses DefaultTemperature when temperature is not positive.
func NewChatUseCase(llm service.LLMService, temperature float32, log logger.Logger) *ChatUseCase {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &ChatUseCase{
		llm:         llm,
		temperature: temperature,
		logger:      log,
	}
}

// Ask sends text to the assistant, grounded on doc. It never fails: errors and empty answers are
// replaced with fixed fallback replies. There is a single attempt.
func (uc *ChatUseCase) Ask(ctx context.Context, text string, doc *portfolio.Document) string {
	ctx, span := tracer.Start(ctx, "Ask")
	defer span.End()

	l := uc.logger.With(zap.Int("prompt_length", len(text)))

	reply, err := uc.llm.GenerateChatResponse(ctx, service.ChatRequest{
		Prompt:        text,
		SystemContext: BuildContext(doc),
		Temperature:   uc.temperature,
	})
	if err != nil {
		span.RecordError(err)
		l.Error("Assistant request failed", err)
		return FallbackUnavailable
	}
	if strings.TrimSpace(reply) == "" {
		l.Warn("Assistant returned an empty reply")
		return FallbackEmpty
	}
	return reply
}

// BuildContext renders the grounding text for the assistant from the profile, skills, projects
// and experience of doc.
func BuildContext(doc *portfolio.Document) string {
	p := doc.Profile
	var b strings.Builder

	fmt.Fprintf(&b, "You are the AI Assistant for %s, a %s.\n", p.Name, p.Title)
	fmt.Fprintf(&b, "Your goal is to answer questions about %s's professional background, skills, and projects based on the provided context.\n\n", p.Name)
	fmt.Fprintf(&b, "About: %s\n\n", p.About)

	b.WriteString("Skills:\n")
	for _, s := range doc.Skills {
		fmt.Fprintf(&b, "- %s (%d%%)\n", s.Name, s.Level)
	}

	b.WriteString("\nProjects:\n")
	for _, pr := range doc.Projects {
		fmt.Fprintf(&b, "- %s: %s\n", pr.Title, pr.Description)
	}

	b.WriteString("\nExperience:\n")
	for _, e := range doc.Experience {
		fmt.Fprintf(&b, "- %s at %s at %s (%s)\n", e.Role, e.Company, e.Location, e.Period)
	}

	fmt.Fprintf(&b, "\nKeep your answers professional, concise, and helpful. If asked something outside this context, politely steer the conversation back to %s's work.\n", p.Name)
	return b.String()
}
