package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
)

const redisKeyPrefix = "portfolio:"

type redisDocumentStorage struct {
	rdb *redis.Client
}

// NewRedisDocumentStorage keeps each document as a plain string value without expiry.
func NewRedisDocumentStorage(rdb *redis.Client) service.DocumentStorage {
	return &redisDocumentStorage{rdb: rdb}
}

func (s *redisDocumentStorage) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrBlobNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return raw, nil
}

func (s *redisDocumentStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
