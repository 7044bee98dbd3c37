// Package workspace owns the in-memory portfolio document and the owner session around it.
package workspace

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var tracer = otel.Tracer("workspace")

// EditFunc is a section editor: it returns a new document and leaves its input alone.
type EditFunc = func(*portfolio.Document) (*portfolio.Document, error)

// Workspace is the single source of truth while the process runs. The document only reaches
// storage through Save; edits are refused unless the owner is logged in.
type Workspace struct {
	store  *document.Store
	events service.EventPublisher
	logger logger.Logger
	now    func() time.Time

	mu      sync.RWMutex
	doc     *portfolio.Document
	isAdmin bool
	unsaved bool
	epoch   uint64
	// revision is the store revision the in-memory document is known to be at least as new as.
	revision uint64
}

// New loads the stored document. The session starts logged out with nothing unsaved.
func New(ctx context.Context, store *document.Store, events service.EventPublisher, log logger.Logger) *Workspace {
	rev := store.Revision()
	return &Workspace{
		store:    store,
		events:   events,
		logger:   log,
		now:      time.Now,
		doc:      store.Load(ctx),
		revision: rev,
	}
}

// Document returns a copy of the current document, including unsaved edits.
func (w *Workspace) Document() *portfolio.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.doc.Clone()
}

func (w *Workspace) IsAdmin() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isAdmin
}

func (w *Workspace) HasUnsavedChanges() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.unsaved
}

// Epoch identifies the current login session. It changes on every logout.
func (w *Workspace) Epoch() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.epoch
}

// SessionValid reports whether a token issued for epoch still belongs to a live owner session.
func (w *Workspace) SessionValid(epoch uint64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isAdmin && w.epoch == epoch
}

// Login compares the credentials with the ones in the current document. A mismatch leaves the
// session as it was. It returns the session epoch on success.
func (w *Workspace) Login(username, password string) (uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.doc.Settings
	if username != s.AdminUsername || !auth.MatchPassword(password, s.AdminPassword) {
		w.logger.Warn("Rejected admin login", zap.String("username", username))
		return 0, false
	}
	w.isAdmin = true
	w.logger.Info("Admin logged in", zap.String("username", username), zap.Uint64("epoch", w.epoch))
	return w.epoch, true
}

// Logout ends the session. Unsaved edits stay in memory.
func (w *Workspace) Logout() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.isAdmin = false
	w.epoch++
	w.logger.Info("Admin logged out", zap.Bool("unsaved_changes", w.unsaved))
}

// Edit applies fn to the current document and keeps the result as unsaved.
func (w *Workspace) Edit(fn EditFunc) (*portfolio.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isAdmin {
		return nil, apperror.NewPermissionDenied("log in to edit the portfolio")
	}
	next, err := fn(w.doc)
	if err != nil {
		return nil, err
	}
	w.doc = next
	w.unsaved = true
	return next.Clone(), nil
}

// Save writes the whole document. The unsaved flag is only cleared when the write succeeds.
func (w *Workspace) Save(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()

	w.mu.Lock()
	if !w.isAdmin {
		w.mu.Unlock()
		return apperror.NewPermissionDenied("log in to save the portfolio")
	}
	doc := w.doc
	rev, err := w.store.Commit(ctx, doc)
	if err != nil {
		w.mu.Unlock()
		span.RecordError(err)
		return err
	}
	w.unsaved = false
	w.revision = rev
	w.mu.Unlock()

	span.SetAttributes(attribute.Int("portfolio.projects", len(doc.Projects)))
	w.logger.Info("Portfolio saved", zap.Int("projects", len(doc.Projects)), zap.Int("messages", len(doc.Messages)))

	if w.events != nil {
		event := service.PortfolioEvent{
			EventType: service.EventPortfolioSaved,
			Projects:  len(doc.Projects),
			Messages:  len(doc.Messages),
			At:        w.now().UTC(),
		}
		if err := w.events.PublishPortfolioEvent(ctx, event); err != nil {
			w.logger.Warn("Failed to publish portfolio event", zap.Error(err))
		}
	}
	return nil
}

// Reload replaces the in-memory document with the stored one, discarding unsaved edits.
func (w *Workspace) Reload(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.isAdmin {
		return apperror.NewPermissionDenied("log in to reload the portfolio")
	}
	w.revision = w.store.Revision()
	w.doc = w.store.Load(ctx)
	w.unsaved = false
	return nil
}

// AdoptIfClean takes doc, written at store revision rev, as the current document. It is refused
// while there are unsaved edits, and when the workspace already holds something written later. It
// reports whether doc was adopted.
func (w *Workspace) AdoptIfClean(doc *portfolio.Document, rev uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.unsaved || rev < w.revision {
		return false
	}
	w.doc = doc.Clone()
	w.revision = rev
	return true
}

func (w *Workspace) Stats() portfolio.Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.doc.Stats()
}
