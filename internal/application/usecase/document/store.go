package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// DefaultKey is the storage key the browser build used; kept so exported data imports as-is.
const DefaultKey = "portfolio_cms_data_v3"

var tracer = otel.Tracer("document_store")

// Store loads and saves the whole portfolio document under one key.
type Store struct {
	storage service.DocumentStorage
	key     string
	logger  logger.Logger

	// writeMu serializes Save and Update so a read-modify-write never interleaves with a save.
	writeMu sync.Mutex
	// revision counts successful writes made through this store.
	revision atomic.Uint64
}

func NewStore(storage service.DocumentStorage, key string, log logger.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		storage: storage,
		key:     key,
		logger:  log.With(zap.String("storage_key", key)),
	}
}

func (s *Store) Key() string {
	return s.key
}

// Load returns the seed document overlaid with whatever is stored. Missing, unreadable or corrupt
// data yields the seed document; the failure is logged and never returned.
func (s *Store) Load(ctx context.Context) *portfolio.Document {
	ctx, span := tracer.Start(ctx, "Load")
	defer span.End()

	doc, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("Failed to load stored portfolio, using defaults", zap.Error(err))
		return portfolio.Default()
	}
	return doc
}

// load is the strict variant of Load: only a missing or empty blob yields the seed document.
func (s *Store) load(ctx context.Context) (*portfolio.Document, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, service.ErrBlobNotFound) {
		return portfolio.Default(), nil
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to read portfolio", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return portfolio.Default(), nil
	}

	doc, err := portfolio.Overlay(portfolio.Default(), raw)
	if err != nil {
		return nil, apperror.NewInternal("stored portfolio is corrupt", err)
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("portfolio.bytes", len(raw)))
	return doc, nil
}

// Revision is the number of writes this store has made. A document written at a higher revision
// is newer.
func (s *Store) Revision() uint64 {
	return s.revision.Load()
}

// Save serializes the whole document and writes it.
func (s *Store) Save(ctx context.Context, doc *portfolio.Document) error {
	_, err := s.Commit(ctx, doc)
	return err
}

// Commit is Save that also reports the revision of the write.
func (s *Store) Commit(ctx context.Context, doc *portfolio.Document) (uint64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.save(ctx, doc)
}

// Update reloads the stored document, applies fn and writes the result immediately. It works on
// storage only and never sees in-memory edits that were not saved. Unlike Load it refuses to run
// when the stored document cannot be read or parsed, so a failed read is never written back as the
// seed document.
func (s *Store) Update(ctx context.Context, fn func(*portfolio.Document) (*portfolio.Document, error)) (*portfolio.Document, uint64, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Refusing to update unreadable portfolio", err)
		return nil, 0, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, 0, err
	}
	rev, err := s.save(ctx, next)
	if err != nil {
		return nil, 0, err
	}
	return next, rev, nil
}

// Export returns the stored bytes as they would be loaded, re-serialized.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	raw, err := json.MarshalIndent(s.Load(ctx), "", "  ")
	if err != nil {
		return nil, apperror.NewInternal("failed to serialize portfolio", err)
	}
	return raw, nil
}

func (s *Store) save(ctx context.Context, doc *portfolio.Document) (uint64, error) {
	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()

	raw, err := json.Marshal(doc)
	if err != nil {
		span.RecordError(err)
		return 0, apperror.NewInternal("failed to serialize portfolio", err)
	}
	if err := s.storage.Put(ctx, s.key, raw); err != nil {
		span.RecordError(err)
		s.logger.Error("Failed to write portfolio", err)
		return 0, apperror.NewInternal("failed to write portfolio", err)
	}
	rev := s.revision.Add(1)
	s.logger.Debug("Portfolio written", zap.Int("bytes", len(raw)), zap.Uint64("revision", rev))
	return rev, nil
}
