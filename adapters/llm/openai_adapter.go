package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// placeholderKey is sent to local OpenAI-compatible servers (Ollama) that ignore the key.
const placeholderKey = "dummy-key"

type openAIChatAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

// NewOpenAIChatAdapter talks to any OpenAI-compatible chat completions endpoint: Ollama, OpenAI,
// or Gemini's compatibility endpoint, depending on llm.base_url.
func NewOpenAIChatAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.LLM.BaseURL == "" {
		return nil, fmt.Errorf("llm base_url is not configured")
	}
	if cfg.LLM.Model == "" {
		return nil, fmt.Errorf("llm model is not configured")
	}

	key := cfg.LLM.APIKey
	if key == "" {
		key = placeholderKey
	}
	clientCfg := openai.DefaultConfig(key)
	clientCfg.BaseURL = cfg.LLM.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.LLM.Timeout}

	log.Info("LLM chat adapter initialized", zap.String("base_url", cfg.LLM.BaseURL), zap.String("model", cfg.LLM.Model))
	return &openAIChatAdapter{client: openai.NewClientWithConfig(clientCfg), model: cfg.LLM.Model, log: log}, nil
}

func (a *openAIChatAdapter) GenerateChatResponse(ctx context.Context, req service.ChatRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemContext != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemContext,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: req.Temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		a.log.Warn("LLM returned no chat choices", zap.String("model", a.model))
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
