package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresDocumentStorage struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewPostgresDocumentStorage stores documents in the documents table, one row per key.
func NewPostgresDocumentStorage(db *pgxpool.Pool, log logger.Logger) service.DocumentStorage {
	return &postgresDocumentStorage{db: db, logger: log}
}

func (s *postgresDocumentStorage) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := psql.Select("body").
		From("documents").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var body []byte
	if err := s.db.QueryRow(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrBlobNotFound
		}
		return nil, fmt.Errorf("select document %q: %w", key, err)
	}
	return body, nil
}

func (s *postgresDocumentStorage) Put(ctx context.Context, key string, value []byte) error {
	query, args, err := psql.Insert("documents").
		Columns("key", "body", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert document %q: %w", key, err)
	}
	return nil
}
