package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio-cms/internal/testutil"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type countingRunner struct {
	calls int
	err   error
}

func (r *countingRunner) Execute(context.Context) (*backup.BackupOutput, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &backup.BackupOutput{PublicID: "portfolio-x.json"}, nil
}

func TestHandleMessageEvent_Deduplicates(t *testing.T) {
	uc := NewProcessEventUseCase(nil, time.Minute, logger.NewNopLogger())
	ctx := context.Background()
	evt := service.MessageEvent{EventType: service.EventMessageSubmitted, MessageID: "m1", Name: "Jane"}

	assert.True(t, uc.HandleMessageEvent(ctx, evt))
	assert.False(t, uc.HandleMessageEvent(ctx, evt))
	assert.False(t, uc.HandleMessageEvent(ctx, service.MessageEvent{}))
}

func TestHandlePortfolioEvent_ThrottlesBackups(t *testing.T) {
	runner := &countingRunner{}
	uc := NewProcessEventUseCase(runner, 10*time.Minute, logger.NewNopLogger())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	ctx := context.Background()
	saved := service.PortfolioEvent{EventType: service.EventPortfolioSaved}

	ran, err := uc.HandlePortfolioEvent(ctx, saved)
	require.NoError(t, err)
	assert.True(t, ran)

	now = now.Add(time.Minute)
	ran, err = uc.HandlePortfolioEvent(ctx, saved)
	require.NoError(t, err)
	assert.False(t, ran)

	now = now.Add(10 * time.Minute)
	ran, err = uc.HandlePortfolioEvent(ctx, saved)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 2, runner.calls)
}

func TestHandlePortfolioEvent_FailureAllowsRetry(t *testing.T) {
	runner := &countingRunner{err: testutil.ErrInjected}
	uc := NewProcessEventUseCase(runner, time.Hour, logger.NewNopLogger())
	ctx := context.Background()
	saved := service.PortfolioEvent{EventType: service.EventPortfolioSaved}

	_, err := uc.HandlePortfolioEvent(ctx, saved)
	assert.ErrorIs(t, err, testutil.ErrInjected)

	runner.err = nil
	ran, err := uc.HandlePortfolioEvent(ctx, saved)
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestHandlePortfolioEvent_NoRunner(t *testing.T) {
	uc := NewProcessEventUseCase(nil, time.Hour, logger.NewNopLogger())
	ran, err := uc.HandlePortfolioEvent(context.Background(), service.PortfolioEvent{EventType: service.EventPortfolioSaved})
	require.NoError(t, err)
	assert.False(t, ran)
}
