package service

import (
	"context"
)

type ChatRequest struct {
	Prompt        string
	SystemContext string
	Temperature   float32
}

type LLMService interface {
	GenerateChatResponse(ctx context.Context, req ChatRequest) (string, error)
}
