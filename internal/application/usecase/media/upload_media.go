package media

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// Target says which document field an uploaded file is attached to.
type Target string

const (
	TargetProfileImage    Target = "profileImage"
	TargetResume          Target = "resume"
	TargetProjectImage    Target = "projectImage"
	TargetProjectDocument Target = "projectDocument"
)

func (t Target) Valid() bool {
	switch t {
	case TargetProfileImage, TargetResume, TargetProjectImage, TargetProjectDocument:
		return true
	}
	return false
}

func (t Target) needsProject() bool {
	return t == TargetProjectImage || t == TargetProjectDocument
}

// Editor applies a section edit to the workspace document.
type Editor interface {
	Edit(fn func(*portfolio.Document) (*portfolio.Document, error)) (*portfolio.Document, error)
}

var tracer = otel.Tracer("media_usecase")

type UploadMediaUseCase struct {
	editor   Editor
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadMediaUseCase(e Editor, u service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{editor: e, uploader: u, logger: log}
}

type UploadMediaInput struct {
	Target    Target
	ProjectID string
	File      io.Reader
}

type UploadMediaOutput struct {
	URL      string
	Document *portfolio.Document
}

// Execute uploads the file and stores the returned reference in the target field. The document
// change is unsaved like any other edit. If the edit is refused the upload is removed again.
func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadMediaInput) (*UploadMediaOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadMedia")
	defer span.End()

	if !input.Target.Valid() {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown media target %q", input.Target), nil)
	}
	if input.Target.needsProject() && input.ProjectID == "" {
		return nil, apperror.NewInvalidInput("project id is required for project media", nil)
	}

	folder := "portfolio/" + string(input.Target)
	publicID := portfolio.NewID()
	l := uc.logger.With(zap.String("target", string(input.Target)), zap.String("public_id", publicID))

	url, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		span.RecordError(err)
		l.Error("Failed to upload media", err)
		return nil, apperror.NewInternal("failed to upload media file", err)
	}

	doc, err := uc.editor.Edit(func(d *portfolio.Document) (*portfolio.Document, error) {
		return attach(d, input.Target, input.ProjectID, url)
	})
	if err != nil {
		span.RecordError(err)
		go func() {
			if derr := uc.uploader.Delete(context.Background(), folder+"/"+publicID); derr != nil {
				l.Warn("Failed to remove orphaned upload", zap.Error(derr))
			}
		}()
		return nil, err
	}

	l.Info("Media attached", zap.Int("url_length", len(url)))
	return &UploadMediaOutput{URL: url, Document: doc}, nil
}

func attach(doc *portfolio.Document, target Target, projectID, url string) (*portfolio.Document, error) {
	switch target {
	case TargetProfileImage:
		return editor.SetProfileImage(doc, url)
	case TargetResume:
		return editor.SetResume(doc, url)
	case TargetProjectImage:
		return editor.UpdateProject(doc, projectID, editor.ProjectPatch{Image: &url})
	default:
		return editor.SetProjectDocument(doc, projectID, url)
	}
}
