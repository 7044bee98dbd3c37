package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	"github.com/khoahotran/portfolio-cms/adapters/media_storage"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/notification"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
	"github.com/khoahotran/portfolio-cms/pkg/tracing"
)

func main() {
	fmt.Println("Starting Portfolio CMS Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg, appLogger, "portfolio-cms-worker")
	if err != nil {
		appLogger.Error("Tracing unavailable, continuing without it", err)
	}
	defer shutdownTracing(context.Background())

	// Storage
	storage, releaseStorage, err := persistence.NewDocumentStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open document storage", err, zap.String("driver", cfg.Storage.Driver))
	}
	defer releaseStorage()
	store := document.NewStore(storage, cfg.Storage.Key, appLogger)

	// Backups need remote storage; inline uploads would go nowhere.
	var backupUseCase *backupUC.BackupUseCase
	var runner notification.BackupRunner
	if cfg.CloudinaryEnabled() {
		uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
		backupUseCase = backupUC.NewBackupUseCase(store, uploader, appLogger)
		runner = backupUseCase
	} else {
		appLogger.Warn("Cloudinary not configured, backups are disabled")
	}

	// Worker Use Case
	processEventUC := notification.NewProcessEventUseCase(runner, cfg.Backup.MinInterval, appLogger)

	// Scheduled backups
	scheduler := cron.New()
	if backupUseCase != nil && cfg.Backup.Schedule != "" {
		_, err := scheduler.AddFunc(cfg.Backup.Schedule, func() {
			if _, err := backupUseCase.Execute(ctx); err != nil {
				appLogger.Error("Scheduled backup failed", err)
			}
		})
		if err != nil {
			appLogger.Fatal("Invalid backup schedule", err, zap.String("schedule", cfg.Backup.Schedule))
		}
		scheduler.Start()
		appLogger.Info("Backup scheduled", zap.String("schedule", cfg.Backup.Schedule))
	}

	// Kafka Consumers
	var wg sync.WaitGroup
	if cfg.KafkaEnabled() {
		consume(ctx, &wg, cfg, appLogger, event.TopicMessageEvents, func(ctx context.Context, value []byte) error {
			var payload service.MessageEvent
			if err := json.Unmarshal(value, &payload); err != nil {
				return errSkip(err)
			}
			processEventUC.HandleMessageEvent(ctx, payload)
			return nil
		})
		consume(ctx, &wg, cfg, appLogger, event.TopicPortfolioEvents, func(ctx context.Context, value []byte) error {
			var payload service.PortfolioEvent
			if err := json.Unmarshal(value, &payload); err != nil {
				return errSkip(err)
			}
			_, err := processEventUC.HandlePortfolioEvent(ctx, payload)
			return err
		})
	} else {
		appLogger.Warn("Kafka not configured, only scheduled jobs will run")
	}

	<-ctx.Done()
	appLogger.Info("Shutting down worker...")
	<-scheduler.Stop().Done()
	wg.Wait()
}
