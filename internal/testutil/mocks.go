// Package testutil holds in-memory fakes of the application ports for unit tests.
package testutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
)

// MemoryStorage is a DocumentStorage backed by a map.
type MemoryStorage struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	GetErr error
	PutErr error
	Puts   int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.blobs[key]
	if !ok {
		return nil, service.ErrBlobNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStorage) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.blobs[key] = append([]byte(nil), value...)
	m.Puts++
	return nil
}

// Raw returns what is stored under key, or nil.
func (m *MemoryStorage) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[key]
}

// Set stores value under key directly, bypassing PutErr.
func (m *MemoryStorage) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
}

// FakeLLM answers with Reply or fails with Err, recording the last request. If Block is set,
// calls wait until it is closed.
type FakeLLM struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	Block   chan struct{}
	Calls   int
	LastReq service.ChatRequest
}

func (f *FakeLLM) GenerateChatResponse(ctx context.Context, req service.ChatRequest) (string, error) {
	f.mu.Lock()
	f.Calls++
	f.LastReq = req
	block := f.Block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.Reply, f.Err
}

func (f *FakeLLM) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// FakeUploader records uploads and returns a predictable URL.
type FakeUploader struct {
	mu       sync.Mutex
	Uploaded map[string][]byte
	Deleted  []string
	Err      error
}

func NewFakeUploader() *FakeUploader {
	return &FakeUploader{Uploaded: make(map[string][]byte)}
}

func (u *FakeUploader) Upload(_ context.Context, file io.Reader, folder string, publicID string) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Uploaded[folder+"/"+publicID] = data
	return "https://cdn.test/" + folder + "/" + publicID, nil
}

func (u *FakeUploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Deleted = append(u.Deleted, publicID)
	return nil
}

func (u *FakeUploader) DeletedIDs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.Deleted...)
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu        sync.Mutex
	Messages  []service.MessageEvent
	Portfolio []service.PortfolioEvent
	Err       error
}

func (p *RecordingPublisher) PublishMessageEvent(_ context.Context, payload service.MessageEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Messages = append(p.Messages, payload)
	return p.Err
}

func (p *RecordingPublisher) PublishPortfolioEvent(_ context.Context, payload service.PortfolioEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Portfolio = append(p.Portfolio, payload)
	return p.Err
}

func (p *RecordingPublisher) Close() {}

func (p *RecordingPublisher) MessageEvents() []service.MessageEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]service.MessageEvent(nil), p.Messages...)
}

func (p *RecordingPublisher) PortfolioEvents() []service.PortfolioEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]service.PortfolioEvent(nil), p.Portfolio...)
}

var ErrInjected = errors.New("injected failure")
