package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

func TestClearMedia(t *testing.T) {
	upload, ws, _ := newUseCase(t, true)
	clearUC := NewClearMediaUseCase(ws, logger.NewNopLogger())
	ctx := context.Background()

	_, err := upload.Execute(ctx, UploadMediaInput{Target: TargetResume, File: strings.NewReader("cv")})
	require.NoError(t, err)
	require.NotEmpty(t, ws.Document().Profile.ResumeURL)

	doc, err := clearUC.Execute(ctx, ClearMediaInput{Target: TargetResume})
	require.NoError(t, err)
	assert.Empty(t, doc.Profile.ResumeURL)

	_, err = clearUC.Execute(ctx, ClearMediaInput{Target: TargetProjectDocument})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = clearUC.Execute(ctx, ClearMediaInput{Target: TargetProjectDocument, ProjectID: "missing"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = clearUC.Execute(ctx, ClearMediaInput{Target: "avatar"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
