package persistence

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// NewDocumentStorage builds the backend named by storage.driver. The postgres backend migrates
// its schema first unless db.migrations is empty. The returned func releases its connections.
func NewDocumentStorage(ctx context.Context, cfg config.Config, log logger.Logger) (service.DocumentStorage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile, "":
		log.Info("Using file storage")
		return NewFileDocumentStorage(afero.NewOsFs(), cfg.Storage.Dir), func() {}, nil
	case config.StorageDriverRedis:
		rdb, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisDocumentStorage(rdb), func() { _ = rdb.Close() }, nil
	case config.StorageDriverPostgres:
		if cfg.DB.Migrations != "" {
			if err := MigrateUp(cfg.DB.Migrations, cfg.DB.DSN, log); err != nil {
				return nil, nil, err
			}
		}
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresDocumentStorage(pool, log), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
