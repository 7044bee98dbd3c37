package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

func quickRetries() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), handleRetries)
}

func countingHandler(failures int, err error) (handler, *int) {
	calls := 0
	return func(context.Context, []byte) error {
		calls++
		if calls <= failures {
			return err
		}
		return nil
	}, &calls
}

func TestHandleMessage_RetriesTransientFailure(t *testing.T) {
	handle, calls := countingHandler(2, errors.New("cloudinary: 503"))

	ok := handleMessage(context.Background(), logger.NewNopLogger(), quickRetries(), kafka.Message{Key: []byte("k")}, handle)
	assert.True(t, ok)
	assert.Equal(t, 3, *calls)
}

func TestHandleMessage_DropsAfterRetries(t *testing.T) {
	handle, calls := countingHandler(100, errors.New("cloudinary: 503"))

	ok := handleMessage(context.Background(), logger.NewNopLogger(), quickRetries(), kafka.Message{}, handle)
	assert.True(t, ok)
	assert.Equal(t, handleRetries+1, *calls)
}

func TestHandleMessage_SkipsMalformedWithoutRetry(t *testing.T) {
	handle, calls := countingHandler(100, errSkip(errors.New("invalid character")))

	ok := handleMessage(context.Background(), logger.NewNopLogger(), quickRetries(), kafka.Message{}, handle)
	assert.True(t, ok)
	assert.Equal(t, 1, *calls)
}

func TestHandleMessage_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handle := func(context.Context, []byte) error {
		cancel()
		return errors.New("interrupted")
	}

	ok := handleMessage(ctx, logger.NewNopLogger(), quickRetries(), kafka.Message{}, handle)
	assert.False(t, ok)
}
