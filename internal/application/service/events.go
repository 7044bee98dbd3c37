package service

import (
	"context"
	"time"
)

const (
	EventMessageSubmitted = "message.submitted"
	EventPortfolioSaved   = "portfolio.saved"
)

type MessageEvent struct {
	EventType string    `json:"event_type"`
	MessageID string    `json:"message_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	At        time.Time `json:"at"`
}

type PortfolioEvent struct {
	EventType string    `json:"event_type"`
	Projects  int       `json:"projects"`
	Messages  int       `json:"messages"`
	At        time.Time `json:"at"`
}

type EventPublisher interface {
	PublishMessageEvent(ctx context.Context, payload MessageEvent) error
	PublishPortfolioEvent(ctx context.Context, payload PortfolioEvent) error
	Close()
}
