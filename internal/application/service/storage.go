package service

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by DocumentStorage.Get when nothing is stored under the key.
var ErrBlobNotFound = errors.New("blob not found")

// DocumentStorage is the persistence medium for the serialized portfolio document: one opaque
// blob per key, written whole.
type DocumentStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
