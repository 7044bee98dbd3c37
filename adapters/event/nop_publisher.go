package event

import (
	"context"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
)

// NopPublisher drops every event. Used when no Kafka brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishMessageEvent(context.Context, service.MessageEvent) error { return nil }

func (NopPublisher) PublishPortfolioEvent(context.Context, service.PortfolioEvent) error { return nil }

func (NopPublisher) Close() {}
