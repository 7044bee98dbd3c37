package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
)

type fileDocumentStorage struct {
	fs  afero.Fs
	dir string
}

// NewFileDocumentStorage writes each document to <dir>/<key>.json on fsys.
func NewFileDocumentStorage(fsys afero.Fs, dir string) service.DocumentStorage {
	return &fileDocumentStorage{fs: fsys, dir: dir}
}

func (s *fileDocumentStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *fileDocumentStorage) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	raw, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, service.ErrBlobNotFound
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return raw, nil
}

// Put writes to a temporary file and renames it over the target, so a crash mid-write leaves the
// previous document in place.
func (s *fileDocumentStorage) Put(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
