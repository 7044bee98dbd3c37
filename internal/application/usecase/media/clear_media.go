package media

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type ClearMediaUseCase struct {
	editor Editor
	logger logger.Logger
}

func NewClearMediaUseCase(e Editor, log logger.Logger) *ClearMediaUseCase {
	return &ClearMediaUseCase{editor: e, logger: log}
}

type ClearMediaInput struct {
	Target    Target
	ProjectID string
}

// Execute empties the target field. Hosted files are left in place; the document only keeps
// their URL.
func (uc *ClearMediaUseCase) Execute(ctx context.Context, input ClearMediaInput) (*portfolio.Document, error) {
	_, span := tracer.Start(ctx, "ClearMedia")
	defer span.End()

	if !input.Target.Valid() {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown media target %q", input.Target), nil)
	}
	if input.Target.needsProject() && input.ProjectID == "" {
		return nil, apperror.NewInvalidInput("project id is required for project media", nil)
	}

	doc, err := uc.editor.Edit(func(d *portfolio.Document) (*portfolio.Document, error) {
		return attach(d, input.Target, input.ProjectID, "")
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("Media cleared", zap.String("target", string(input.Target)), zap.String("project_id", input.ProjectID))
	return doc, nil
}
