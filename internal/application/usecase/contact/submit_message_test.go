package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/workspace"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/testutil"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type fixture struct {
	storage *testutil.MemoryStorage
	store   *document.Store
	ws      *workspace.Workspace
	events  *testutil.RecordingPublisher
	uc      *SubmitMessageUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{storage: testutil.NewMemoryStorage(), events: &testutil.RecordingPublisher{}}
	f.store = document.NewStore(f.storage, "", logger.NewNopLogger())
	f.ws = workspace.New(context.Background(), f.store, f.events, logger.NewNopLogger())
	f.uc = NewSubmitMessageUseCase(f.store, f.ws, f.events, logger.NewNopLogger())
	f.uc.now = func() time.Time { return time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC) }
	return f
}

func TestSubmitMessage_PrependsAndWritesImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, SubmitMessageInput{Name: "A", Email: "a@x", Message: "first"})
	require.NoError(t, err)
	out, err := f.uc.Execute(ctx, SubmitMessageInput{Name: "B", Email: "b@x", Subject: "Hire", Message: "second"})
	require.NoError(t, err)

	stored := f.store.Load(ctx)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, out.Message.ID, stored.Messages[0].ID)
	assert.Equal(t, "second", stored.Messages[0].Message)
	assert.Equal(t, "Hire", stored.Messages[0].Subject)
	assert.Equal(t, DefaultSubject, stored.Messages[1].Subject)
	assert.Equal(t, "3/7/2025", stored.Messages[0].Date)
	assert.False(t, stored.Messages[0].IsRead)

	events := f.events.MessageEvents()
	require.Len(t, events, 2)
	assert.Equal(t, service.EventMessageSubmitted, events[1].EventType)
	assert.Equal(t, out.Message.ID, events[1].MessageID)
}

func TestSubmitMessage_CleanWorkspaceSeesMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), SubmitMessageInput{Name: "A", Email: "a@x", Message: "hi"})
	require.NoError(t, err)

	assert.Len(t, f.ws.Document().Messages, 1)
	assert.False(t, f.ws.HasUnsavedChanges())
}

func TestSubmitMessage_DoesNotTouchUnsavedEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, ok := f.ws.Login("user", "password")
	require.True(t, ok)
	_, err := f.ws.Edit(editor.ToggleTheme)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, SubmitMessageInput{Name: "A", Email: "a@x", Message: "hi"})
	require.NoError(t, err)

	// storage has the message but not the owner's pending theme change.
	stored := f.store.Load(ctx)
	assert.Len(t, stored.Messages, 1)
	assert.Equal(t, portfolio.ThemeDark, stored.Settings.Theme)

	// the workspace keeps the edit and does not see the message until it reloads.
	assert.Equal(t, portfolio.ThemeLight, f.ws.Document().Settings.Theme)
	assert.Empty(t, f.ws.Document().Messages)
	assert.True(t, f.ws.HasUnsavedChanges())
}

func TestSubmitMessage_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), SubmitMessageInput{Name: " ", Email: "a@x", Message: "hi"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Zero(t, f.storage.Puts)
}

func TestSubmitMessage_WriteFailure(t *testing.T) {
	f := newFixture(t)
	f.storage.PutErr = testutil.ErrInjected

	_, err := f.uc.Execute(context.Background(), SubmitMessageInput{Name: "A", Email: "a@x", Message: "hi"})
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Empty(t, f.events.MessageEvents())
	assert.Empty(t, f.ws.Document().Messages)
}

func TestSubmitMessage_ReadFailureKeepsStoredPortfolio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	saved := portfolio.Default()
	saved.Profile.Name = "Owner Saved Name"
	saved.Projects = saved.Projects[:1]
	require.NoError(t, f.store.Save(ctx, saved))

	f.storage.GetErr = errors.New("redis: connection reset")
	_, err := f.uc.Execute(ctx, SubmitMessageInput{Name: "Jane", Email: "j@x.com", Message: "Hi"})
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Empty(t, f.events.MessageEvents())

	f.storage.GetErr = nil
	stored := f.store.Load(ctx)
	assert.Equal(t, "Owner Saved Name", stored.Profile.Name)
	assert.Len(t, stored.Projects, 1)
	assert.Empty(t, stored.Messages)
}

// saveFirst lets the owner save between the visitor write and its adoption.
type saveFirst struct {
	t  *testing.T
	ws *workspace.Workspace
}

func (s saveFirst) AdoptIfClean(doc *portfolio.Document, rev uint64) bool {
	_, ok := s.ws.Login("user", "password")
	require.True(s.t, ok)
	p := editor.NewProject()
	p.Title = "saved-by-owner"
	_, err := s.ws.Edit(func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.AddProject(d, p)
	})
	require.NoError(s.t, err)
	require.NoError(s.t, s.ws.Save(context.Background()))
	return s.ws.AdoptIfClean(doc, rev)
}

func TestSubmitMessage_OwnerSaveWinsOverLateAdoption(t *testing.T) {
	f := newFixture(t)
	f.uc.adopter = saveFirst{t: t, ws: f.ws}

	_, err := f.uc.Execute(context.Background(), SubmitMessageInput{Name: "Jane", Email: "j@x.com", Message: "Hi"})
	require.NoError(t, err)

	doc := f.ws.Document()
	require.Len(t, doc.Projects, 3)
	assert.Equal(t, "saved-by-owner", doc.Projects[0].Title)
	assert.False(t, f.ws.HasUnsavedChanges())

	stored := f.store.Load(context.Background())
	assert.Equal(t, "saved-by-owner", stored.Projects[0].Title)
}
