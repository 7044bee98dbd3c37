package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/testutil"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

func newTestApp() (*app, *testutil.MemoryStorage) {
	storage := testutil.NewMemoryStorage()
	return &app{fs: afero.NewMemMapFs(), storage: storage}, storage
}

func run(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportImport_RoundTrip(t *testing.T) {
	a, storage := newTestApp()

	_, err := run(t, a, "", "import", "-", "--verbose=false")
	require.Error(t, err, "empty input is not an export")

	_, err = run(t, a, `{"skills":[{"id":"x","name":"Go","level":80,"category":"Backend"}]}`, "import", "-")
	require.NoError(t, err)

	out, err := run(t, a, "", "export", "-o", "/backup.json")
	require.NoError(t, err)
	assert.Contains(t, out, "/backup.json")

	raw, err := afero.ReadFile(a.fs, "/backup.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name": "Go"`)

	b, storage2 := newTestApp()
	require.NoError(t, afero.WriteFile(b.fs, "/in.json", raw, 0o644))
	out, err = run(t, b, "", "import", "/in.json")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 projects, 1 skills, 0 messages")
	assert.JSONEq(t, string(storage.Raw(document.DefaultKey)), string(storage2.Raw(document.DefaultKey)))
}

func TestImport_RejectsCorruptFile(t *testing.T) {
	a, storage := newTestApp()
	require.NoError(t, afero.WriteFile(a.fs, "/bad.json", []byte("{nope"), 0o644))

	_, err := run(t, a, "", "import", "/bad.json")
	assert.Error(t, err)
	assert.Nil(t, storage.Raw(document.DefaultKey))
}

func TestReset_RequiresConfirmation(t *testing.T) {
	a, storage := newTestApp()
	storage.Set(document.DefaultKey, []byte(`{"projects":[]}`))

	_, err := run(t, a, "", "reset")
	require.Error(t, err)

	_, err = run(t, a, "", "reset", "--yes")
	require.NoError(t, err)

	doc := document.NewStore(storage, "", logger.NewNopLogger()).Load(context.Background())
	assert.Len(t, doc.Projects, 2)
}

func TestStats(t *testing.T) {
	a, _ := newTestApp()
	out, err := run(t, a, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "projects:   2 (2 visible)")
	assert.Contains(t, out, "messages:   0 (0 unread)")
}

func TestHashPassword(t *testing.T) {
	a, _ := newTestApp()
	out, err := run(t, a, "", "hash-password", "s3cret")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.True(t, auth.IsPasswordHash(hash))
	assert.True(t, auth.CheckPasswordHash("s3cret", hash))
}

func TestBackup_NeedsCloudinary(t *testing.T) {
	a, _ := newTestApp()
	_, err := run(t, a, "", "backup")
	assert.ErrorContains(t, err, "cloudinary")
}

func TestRunChat(t *testing.T) {
	a, _ := newTestApp()
	a.log = logger.NewNopLogger()
	llm := &testutil.FakeLLM{Reply: "Mostly React."}

	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("what do you use?\n\nquit\nignored\n"))
	cmd.SetContext(context.Background())

	require.NoError(t, a.runChat(cmd, llm))
	assert.Contains(t, out.String(), "AI assistant")
	assert.Contains(t, out.String(), "assistant> Mostly React.")
	assert.Equal(t, 1, llm.CallCount())
	assert.Equal(t, "what do you use?", llm.LastReq.Prompt)
}
