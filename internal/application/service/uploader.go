package service

import (
	"context"
	"io"
)

type Uploader interface {
	// Upload stores the file and returns the reference to put in the document: a hosted URL or
	// an inline data URL.
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
