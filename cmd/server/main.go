package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-cms/adapters/http"
	"github.com/khoahotran/portfolio-cms/adapters/llm"
	"github.com/khoahotran/portfolio-cms/adapters/media_storage"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	authUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	chatUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/chat"
	contactUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	feedUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/feed"
	mediaUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/workspace"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
	"github.com/khoahotran/portfolio-cms/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fmt.Println("Start Portfolio CMS API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg, appLogger, "portfolio-cms-api")
	if err != nil {
		appLogger.Error("Tracing unavailable, continuing without it", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize dependencies
	storage, releaseStorage, err := persistence.NewDocumentStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open document storage", err, zap.String("driver", cfg.Storage.Driver))
	}
	defer releaseStorage()

	events := newEventPublisher(cfg, appLogger)
	defer events.Close()

	uploader, err := newUploader(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	llmSvc, err := llm.NewOpenAIChatAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize assistant client", err)
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	store := document.NewStore(storage, cfg.Storage.Key, appLogger)
	ws := workspace.New(ctx, store, events, appLogger)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(ws, jwtSvc, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(ws)
	chatUseCase := chatUC.NewChatUseCase(llmSvc, cfg.LLM.Temperature, appLogger)
	submitMessageUseCase := contactUC.NewSubmitMessageUseCase(store, ws, events, appLogger)
	uploadMediaUseCase := mediaUC.NewUploadMediaUseCase(ws, uploader, appLogger)
	clearMediaUseCase := mediaUC.NewClearMediaUseCase(ws, appLogger)
	rssUseCase := feedUC.NewRSSUseCase(ws, cfg.App.BaseURL, appLogger)

	var backupUseCase *backupUC.BackupUseCase
	if cfg.CloudinaryEnabled() {
		backupUseCase = backupUC.NewBackupUseCase(store, uploader, appLogger)
	}

	// HTTP Handlers
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Auth:      httpAdapter.NewAuthHandler(loginUseCase, logoutUseCase, appLogger),
		Portfolio: httpAdapter.NewPortfolioHandler(ws, appLogger),
		Contact:   httpAdapter.NewContactHandler(submitMessageUseCase, appLogger),
		Chat:      httpAdapter.NewChatHandler(chatUseCase, ws, appLogger),
		Media:     httpAdapter.NewMediaHandler(uploadMediaUseCase, clearMediaUseCase, backupUseCase, ws, appLogger),
		Feed:      httpAdapter.NewFeedHandler(rssUseCase, appLogger),
	}, httpAdapter.RouterDeps{
		JWT:      jwtSvc,
		Sessions: ws,
		Metrics:  httpAdapter.NewMetrics(ws.Stats),
		Logger:   appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	if ws.HasUnsavedChanges() {
		appLogger.Warn("Discarding unsaved portfolio edits on shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}

// newEventPublisher returns the Kafka producer when brokers are configured, else a publisher that
// drops events.
func newEventPublisher(cfg config.Config, log logger.Logger) service.EventPublisher {
	if !cfg.KafkaEnabled() {
		log.Info("Kafka disabled, events will not be published")
		return event.NopPublisher{}
	}
	kafkaClient, err := event.NewKafkaProducerClient(cfg, log)
	if err != nil {
		log.Error("Cannot init Kafka, events will not be published", err)
		return event.NopPublisher{}
	}
	return kafkaClient
}

// newUploader prefers Cloudinary and falls back to inline data URLs stored in the document.
func newUploader(cfg config.Config, log logger.Logger) (service.Uploader, error) {
	if cfg.CloudinaryEnabled() {
		return media_storage.NewCloudinaryAdapter(cfg, log)
	}
	log.Info("Cloudinary not configured, media is stored inline")
	return media_storage.NewInlineAdapter(media_storage.DefaultInlineLimit), nil
}
