package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const handleRetries = 3

type handler func(context.Context, []byte) error

type skipError struct{ err error }

func (e skipError) Error() string { return e.err.Error() }

// errSkip marks a message that can never be processed; it is committed and dropped.
func errSkip(err error) error { return skipError{err: err} }

func newRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return backoff.WithMaxRetries(b, handleRetries)
}

// handleMessage runs handle with retries. It returns false only when ctx ends first, leaving the
// message uncommitted for the next start. A message still failing after the retries is logged and
// dropped: commits are per partition, so the next commit would skip it anyway.
func handleMessage(ctx context.Context, l logger.Logger, b backoff.BackOff, msg kafka.Message, handle handler) bool {
	attempts := 0
	op := func() error {
		attempts++
		err := handle(ctx, msg.Value)
		var skip skipError
		if errors.As(err, &skip) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		l.Warn("Failed to process event, retrying", zap.Error(err), zap.Duration("wait", wait))
	}

	err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	var skip skipError
	if errors.As(err, &skip) {
		l.Warn("Skipping malformed event", zap.Error(err))
		return true
	}
	l.Error("Dropping event after retries", err, zap.String("key", string(msg.Key)), zap.Int("attempts", attempts))
	return true
}

func consume(
	ctx context.Context,
	wg *sync.WaitGroup,
	cfg config.Config,
	appLogger logger.Logger,
	topic string,
	handle handler,
) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	l := appLogger.With(zap.String("topic", topic))

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer reader.Close()

		fetchBackOff := backoff.NewExponentialBackOff()
		fetchBackOff.MaxElapsedTime = 0

		l.Info("Worker listening on topic")
		for {
			msg, err := reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				wait := fetchBackOff.NextBackOff()
				l.Error("Failed to read message from Kafka", err, zap.Duration("retry_in", wait))
				select {
				case <-ctx.Done():
					return
				case <-time.After(wait):
				}
				continue
			}
			fetchBackOff.Reset()

			l.Debug("Received message", zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

			if !handleMessage(ctx, l, newRetryBackOff(), msg, handle) {
				return
			}
			if err := reader.CommitMessages(context.Background(), msg); err != nil {
				l.Error("Failed to commit message", err)
			}
		}
	}()
}
