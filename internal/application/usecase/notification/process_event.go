// Package notification reacts to events published by the API: visitor messages are announced
// and saved portfolios are backed up.
package notification

import (
	"context"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var tracer = otel.Tracer("portfolio-cms/usecase/notification")

// seenLimit bounds the redelivery filter; it is cleared once full.
const seenLimit = 10000

type BackupRunner interface {
	Execute(ctx context.Context) (*backup.BackupOutput, error)
}

type ProcessEventUseCase struct {
	backup      BackupRunner
	minInterval time.Duration
	logger      logger.Logger
	now         func() time.Time

	mu         sync.Mutex
	seen       mapset.Set[string]
	lastBackup time.Time
}

// NewProcessEventUseCase takes a nil runner when backups are not configured. Saves closer together
// than minInterval share one backup.
func NewProcessEventUseCase(runner BackupRunner, minInterval time.Duration, log logger.Logger) *ProcessEventUseCase {
	return &ProcessEventUseCase{
		backup:      runner,
		minInterval: minInterval,
		logger:      log,
		now:         time.Now,
		seen:        mapset.NewThreadUnsafeSet[string](),
	}
}

// HandleMessageEvent announces a new visitor message once, even if the event is redelivered.
// It reports whether a notification was emitted.
func (uc *ProcessEventUseCase) HandleMessageEvent(ctx context.Context, payload service.MessageEvent) bool {
	_, span := tracer.Start(ctx, "HandleMessageEvent")
	defer span.End()

	l := uc.logger.With(zap.String("message_id", payload.MessageID), zap.String("event_type", payload.EventType))
	if payload.MessageID == "" {
		l.Warn("Message event without id, skipping")
		return false
	}

	uc.mu.Lock()
	if uc.seen.Cardinality() >= seenLimit {
		uc.seen.Clear()
	}
	fresh := uc.seen.Add(payload.MessageID)
	uc.mu.Unlock()

	if !fresh {
		l.Info("Message event already handled, skipping")
		return false
	}

	l.Info("New visitor message",
		zap.String("from", payload.Name),
		zap.String("email", payload.Email),
		zap.String("subject", payload.Subject),
		zap.Time("at", payload.At),
	)
	return true
}

// HandlePortfolioEvent backs up the document after a save. It reports whether a backup ran.
func (uc *ProcessEventUseCase) HandlePortfolioEvent(ctx context.Context, payload service.PortfolioEvent) (bool, error) {
	ctx, span := tracer.Start(ctx, "HandlePortfolioEvent")
	defer span.End()

	l := uc.logger.With(zap.String("event_type", payload.EventType))
	l.Info("Portfolio saved", zap.Int("projects", payload.Projects), zap.Int("messages", payload.Messages))

	if uc.backup == nil || payload.EventType != service.EventPortfolioSaved {
		return false, nil
	}

	uc.mu.Lock()
	now := uc.now()
	if !uc.lastBackup.IsZero() && now.Sub(uc.lastBackup) < uc.minInterval {
		uc.mu.Unlock()
		l.Info("Backup ran recently, skipping", zap.Time("last_backup", uc.lastBackup))
		return false, nil
	}
	uc.lastBackup = now
	uc.mu.Unlock()

	if _, err := uc.backup.Execute(ctx); err != nil {
		span.RecordError(err)
		uc.mu.Lock()
		uc.lastBackup = time.Time{}
		uc.mu.Unlock()
		return false, err
	}
	return true, nil
}
