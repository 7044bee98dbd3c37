package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const Folder = "backups/portfolio"

// Exporter yields the stored document as JSON.
type Exporter interface {
	Export(ctx context.Context) ([]byte, error)
}

type BackupUseCase struct {
	exporter Exporter
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time
}

func NewBackupUseCase(exporter Exporter, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		exporter: exporter,
		uploader: uploader,
		logger:   log,
		now:      time.Now,
	}
}

type BackupOutput struct {
	URL      string
	PublicID string
	Bytes    int
}

// Execute uploads a snapshot of the stored document. Unsaved workspace edits are not included.
func (uc *BackupUseCase) Execute(ctx context.Context) (*BackupOutput, error) {
	uc.logger.Info("Starting portfolio backup...")

	raw, err := uc.exporter.Export(ctx)
	if err != nil {
		uc.logger.Error("Portfolio export failed", err)
		return nil, err
	}

	timestamp := uc.now().UTC().Format("2006-01-02_15-04-05")
	publicID := fmt.Sprintf("portfolio-%s.json", timestamp)

	uploadURL, err := uc.uploader.Upload(ctx, bytes.NewReader(raw), Folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload backup", err)
		return nil, apperror.NewInternal("failed to upload backup", err)
	}

	uc.logger.Info("Portfolio backup completed and uploaded successfully",
		zap.String("url", uploadURL),
		zap.String("public_id", publicID),
		zap.Int("bytes", len(raw)),
	)
	return &BackupOutput{URL: uploadURL, PublicID: publicID, Bytes: len(raw)}, nil
}
