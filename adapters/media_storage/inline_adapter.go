package media_storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
)

// DefaultInlineLimit caps inline files; they live inside the document.
const DefaultInlineLimit = 5 << 20

type inlineAdapter struct {
	limit int64
}

// NewInlineAdapter returns an Uploader that stores nothing remotely: the file becomes a base64
// data URL that is kept in the document itself.
func NewInlineAdapter(limit int64) service.Uploader {
	if limit <= 0 {
		limit = DefaultInlineLimit
	}
	return &inlineAdapter{limit: limit}
}

func (a *inlineAdapter) Upload(_ context.Context, file io.Reader, _ string, _ string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(file, a.limit+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > a.limit {
		return "", fmt.Errorf("file exceeds inline limit of %d bytes", a.limit)
	}
	contentType := http.DetectContentType(data)
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Delete has nothing to remove; the data URL disappears with the field that holds it.
func (a *inlineAdapter) Delete(context.Context, string) error {
	return nil
}
