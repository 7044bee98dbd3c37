package persistence

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

func TestFileStorage_GetMissing(t *testing.T) {
	s := NewFileDocumentStorage(afero.NewMemMapFs(), "/data")
	_, err := s.Get(context.Background(), "portfolio_cms_data_v3")
	assert.ErrorIs(t, err, service.ErrBlobNotFound)
}

func TestFileStorage_PutThenGet(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewFileDocumentStorage(fsys, "/data")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", []byte(`{"a":1}`)))
	require.NoError(t, s.Put(ctx, "k", []byte(`{"a":2}`)))

	raw, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(raw))

	exists, err := afero.Exists(fsys, "/data/k.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStorage_RejectsPathKeys(t *testing.T) {
	s := NewFileDocumentStorage(afero.NewMemMapFs(), "/data")
	assert.Error(t, s.Put(context.Background(), "../etc/passwd", []byte("x")))
	_, err := s.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestFileStorage_ReadOnlyWriteFails(t *testing.T) {
	s := NewFileDocumentStorage(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data")
	assert.Error(t, s.Put(context.Background(), "k", []byte("x")))
}

func TestFileStorage_WithStore(t *testing.T) {
	s := NewFileDocumentStorage(afero.NewMemMapFs(), "/data")
	store := document.NewStore(s, "", logger.NewNopLogger())
	ctx := context.Background()

	doc := portfolio.Default()
	doc.Profile.Name = "Jane"
	require.NoError(t, store.Save(ctx, doc))

	loaded := store.Load(ctx)
	assert.Equal(t, "Jane", loaded.Profile.Name)
	assert.Equal(t, doc.Projects, loaded.Projects)
}
