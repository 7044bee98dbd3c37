package media_storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineAdapter_DataURL(t *testing.T) {
	up := NewInlineAdapter(0)
	url, err := up.Upload(context.Background(), strings.NewReader("%PDF-1.4 test"), "portfolio/resume", "id")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:application/pdf;base64,"), url)

	url, err = up.Upload(context.Background(), strings.NewReader("hello"), "f", "id")
	require.NoError(t, err)
	assert.Equal(t, "data:text/plain; charset=utf-8;base64,aGVsbG8=", url)

	assert.NoError(t, up.Delete(context.Background(), "id"))
}

func TestInlineAdapter_Limit(t *testing.T) {
	up := NewInlineAdapter(4)
	_, err := up.Upload(context.Background(), strings.NewReader("12345"), "f", "id")
	assert.Error(t, err)

	_, err = up.Upload(context.Background(), strings.NewReader("1234"), "f", "id")
	assert.NoError(t, err)
}
