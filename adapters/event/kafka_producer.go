package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const (
	TopicMessageEvents   = "message.events"
	TopicPortfolioEvents = "portfolio.events"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	MessageEventsWriter   writer
	PortfolioEventsWriter writer
	logger                logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'message.events'
	messageWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicMessageEvents,
		Balancer: &kafka.LeastBytes{},
	}

	// writer 'portfolio.events'
	portfolioWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		MessageEventsWriter:   messageWriter,
		PortfolioEventsWriter: portfolioWriter,
		logger:                log,
	}, nil
}

func (c *KafkaProducerClient) PublishMessageEvent(ctx context.Context, payload service.MessageEvent) error {
	return publish(ctx, c.MessageEventsWriter, payload.MessageID, payload)
}

func (c *KafkaProducerClient) PublishPortfolioEvent(ctx context.Context, payload service.PortfolioEvent) error {
	return publish(ctx, c.PortfolioEventsWriter, payload.EventType, payload)
}

func publish(ctx context.Context, w writer, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.MessageEventsWriter != nil {
		c.MessageEventsWriter.Close()
	}
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
	if c.logger != nil {
		c.logger.Info("Closed Kafka Producers")
	}
}
