package contact

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const (
	DefaultSubject = "General Inquiry"
	// DateLayout renders the submission day as M/D/YYYY.
	DateLayout = "1/2/2006"
)

var tracer = otel.Tracer("contact_usecase")

// Adopter receives the freshly stored document and the store revision it was written at.
type Adopter interface {
	AdoptIfClean(doc *portfolio.Document, rev uint64) bool
}

type SubmitMessageUseCase struct {
	store   *document.Store
	adopter Adopter
	events  service.EventPublisher
	logger  logger.Logger
	now     func() time.Time
}

func NewSubmitMessageUseCase(store *document.Store, adopter Adopter, events service.EventPublisher, log logger.Logger) *SubmitMessageUseCase {
	return &SubmitMessageUseCase{
		store:   store,
		adopter: adopter,
		events:  events,
		logger:  log,
		now:     time.Now,
	}
}

type SubmitMessageInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type SubmitMessageOutput struct {
	Message portfolio.VisitorMessage
}

// Execute writes the message straight to storage: the stored document is reloaded, the message
// goes to the front of the inbox and the result is saved at once. Unsaved owner edits in the
// workspace are neither written nor lost.
func (uc *SubmitMessageUseCase) Execute(ctx context.Context, input SubmitMessageInput) (*SubmitMessageOutput, error) {
	ctx, span := tracer.Start(ctx, "SubmitMessage")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	if input.Name == "" || input.Email == "" || strings.TrimSpace(input.Message) == "" {
		return nil, apperror.NewInvalidInput("name, email and message are required", nil)
	}
	if input.Subject == "" {
		input.Subject = DefaultSubject
	}

	now := uc.now()
	msg := portfolio.VisitorMessage{
		ID:      portfolio.NewID(),
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Date:    now.Format(DateLayout),
		IsRead:  false,
	}

	stored, rev, err := uc.store.Update(ctx, func(doc *portfolio.Document) (*portfolio.Document, error) {
		return editor.AddMessage(doc, msg)
	})
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to store visitor message", err, zap.String("message_id", msg.ID))
		return nil, err
	}
	span.SetAttributes(attribute.String("message.id", msg.ID))

	adopted := uc.adopter.AdoptIfClean(stored, rev)
	uc.logger.Info("Visitor message stored", zap.String("message_id", msg.ID), zap.Bool("workspace_refreshed", adopted))

	if uc.events != nil {
		event := service.MessageEvent{
			EventType: service.EventMessageSubmitted,
			MessageID: msg.ID,
			Name:      msg.Name,
			Email:     msg.Email,
			Subject:   msg.Subject,
			At:        now.UTC(),
		}
		if err := uc.events.PublishMessageEvent(ctx, event); err != nil {
			uc.logger.Warn("Failed to publish message event", zap.Error(err))
		}
	}
	return &SubmitMessageOutput{Message: msg}, nil
}
