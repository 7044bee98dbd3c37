package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	authUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	chatUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/chat"
	contactUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	feedUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/feed"
	mediaUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/workspace"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/testutil"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type RouterTestSuite struct {
	suite.Suite
	router   *gin.Engine
	ws       *workspace.Workspace
	store    *document.Store
	storage  *testutil.MemoryStorage
	llm      *testutil.FakeLLM
	uploader *testutil.FakeUploader
	events   *testutil.RecordingPublisher
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	ctx := context.Background()

	s.storage = testutil.NewMemoryStorage()
	s.llm = &testutil.FakeLLM{Reply: "I build things."}
	s.uploader = testutil.NewFakeUploader()
	s.events = &testutil.RecordingPublisher{}

	s.store = document.NewStore(s.storage, "", log)
	s.ws = workspace.New(ctx, s.store, s.events, log)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	s.router = NewRouter(Handlers{
		Auth:      NewAuthHandler(authUC.NewLoginUseCase(s.ws, jwtSvc, log), authUC.NewLogoutUseCase(s.ws), log),
		Portfolio: NewPortfolioHandler(s.ws, log),
		Contact:   NewContactHandler(contactUC.NewSubmitMessageUseCase(s.store, s.ws, s.events, log), log),
		Chat:      NewChatHandler(chatUC.NewChatUseCase(s.llm, 0, log), s.ws, log),
		Media: NewMediaHandler(
			mediaUC.NewUploadMediaUseCase(s.ws, s.uploader, log),
			mediaUC.NewClearMediaUseCase(s.ws, log),
			backupUC.NewBackupUseCase(s.store, s.uploader, log),
			s.ws, log,
		),
		Feed: NewFeedHandler(feedUC.NewRSSUseCase(s.ws, "https://me.dev", log), log),
	}, RouterDeps{
		JWT:      jwtSvc,
		Sessions: s.ws,
		Metrics:  NewMetrics(s.ws.Stats),
		Logger:   log,
	})
}

func (s *RouterTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *RouterTestSuite) login() string {
	rr := s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{"username": "user", "password": "password"})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp LoginResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.AccessToken)
	return resp.AccessToken
}

func (s *RouterTestSuite) decodeDocument(rr *httptest.ResponseRecorder) DocumentResponse {
	var resp DocumentResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func (s *RouterTestSuite) Test_Health() {
	rr := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.NotEmpty(rr.Header().Get(RequestIDHeader))
}

func (s *RouterTestSuite) Test_PublicPortfolioHidesPrivateData() {
	rr := s.do(http.MethodGet, "/api/portfolio", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.NotContains(rr.Body.String(), `"password"`)
	s.NotContains(rr.Body.String(), `"adminUsername":"user"`)

	var doc portfolio.Document
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &doc))
	s.Len(doc.Projects, 2)
}

func (s *RouterTestSuite) Test_Login_Flow() {
	rr := s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{"username": "user", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodGet, "/api/admin/session", "", nil)
	s.Equal(http.StatusUnauthorized, rr.Code)

	token := s.login()
	rr = s.do(http.MethodGet, "/api/admin/session", token, nil)
	s.Equal(http.StatusOK, rr.Code)
	var session SessionResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &session))
	s.True(session.IsAdmin)
	s.Equal("user", session.Username)

	rr = s.do(http.MethodPost, "/api/admin/auth/logout", token, nil)
	s.Equal(http.StatusNoContent, rr.Code)

	rr = s.do(http.MethodGet, "/api/admin/session", token, nil)
	s.Equal(http.StatusUnauthorized, rr.Code, "tokens from an ended session are refused")
}

func (s *RouterTestSuite) Test_AddProjectThenSave() {
	token := s.login()

	rr := s.do(http.MethodPost, "/api/admin/projects", token, gin.H{"title": "X"})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	resp := s.decodeDocument(rr)
	s.True(resp.HasUnsavedChanges)
	s.Require().Len(resp.Document.Projects, 3)
	s.Equal("X", resp.Document.Projects[0].Title)
	s.Equal(resp.ID, resp.Document.Projects[0].ID)
	s.Equal([]string{"React"}, resp.Document.Projects[0].Tags)
	s.Empty(resp.Document.Settings.AdminPassword)
	s.Nil(s.storage.Raw(s.store.Key()), "nothing is written before save")

	rr = s.do(http.MethodPost, "/api/admin/save", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.False(s.decodeDocument(rr).HasUnsavedChanges)
	s.Len(s.store.Load(context.Background()).Projects, 3)
	s.Len(s.events.PortfolioEvents(), 1)
}

func (s *RouterTestSuite) Test_ProjectEdits() {
	token := s.login()

	rr := s.do(http.MethodPatch, "/api/admin/projects/2/visibility", token, gin.H{"isVisible": false})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	rr = s.do(http.MethodGet, "/api/projects", "", nil)
	var visible []portfolio.Project
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &visible))
	s.Len(visible, 1)

	rr = s.do(http.MethodPatch, "/api/admin/projects/1/featured", token, nil)
	s.Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodPut, "/api/admin/projects/missing", token, gin.H{"title": "Y"})
	s.Equal(http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodDelete, "/api/admin/projects/missing", token, nil)
	s.Equal(http.StatusOK, rr.Code, "deleting a missing id is a no-op")
	s.Len(s.decodeDocument(rr).Document.Projects, 2)
}

func (s *RouterTestSuite) Test_SkillsClampAndAppend() {
	token := s.login()

	rr := s.do(http.MethodPost, "/api/admin/skills", token, gin.H{"name": "Go", "level": 150, "category": "Backend"})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	skills := s.decodeDocument(rr).Document.Skills
	last := skills[len(skills)-1]
	s.Equal("Go", last.Name)
	s.Equal(100, last.Level)

	rr = s.do(http.MethodPost, "/api/admin/skills", token, gin.H{"category": "Design"})
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) Test_ReplaceSection() {
	token := s.login()

	rr := s.do(http.MethodPut, "/api/admin/sections/education", token, `[{"id":"x","institution":"MIT"}]`)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Len(s.decodeDocument(rr).Document.Education, 1)

	rr = s.do(http.MethodPut, "/api/admin/sections/hobbies", token, `[]`)
	s.Equal(http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodPut, "/api/admin/sections/skills", token, `{"not":"a list"}`)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) Test_ReplaceSettingsKeepsPassword() {
	token := s.login()

	rr := s.do(http.MethodPut, "/api/admin/sections/settings", token,
		`{"theme":"light","adminUsername":"user","seoTitle":"New"}`)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	s.do(http.MethodPost, "/api/admin/auth/logout", token, nil)
	s.login()
}

func (s *RouterTestSuite) Test_SettingsPasswordIsHashed() {
	token := s.login()

	rr := s.do(http.MethodPut, "/api/admin/settings", token, gin.H{"adminPassword": "n3w-pass"})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.True(auth.IsPasswordHash(s.ws.Document().Settings.AdminPassword))

	s.do(http.MethodPost, "/api/admin/auth/logout", token, nil)
	rr = s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{"username": "user", "password": "n3w-pass"})
	s.Equal(http.StatusOK, rr.Code)
}

func (s *RouterTestSuite) Test_ThemeAndOverview() {
	token := s.login()

	rr := s.do(http.MethodPost, "/api/admin/settings/theme", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(portfolio.ThemeLight, s.decodeDocument(rr).Document.Settings.Theme)

	rr = s.do(http.MethodGet, "/api/admin/overview", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var overview OverviewResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &overview))
	s.True(overview.HasUnsavedChanges)
	s.Equal(2, overview.Stats.Projects)

	rr = s.do(http.MethodPost, "/api/admin/reload", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(portfolio.ThemeDark, s.decodeDocument(rr).Document.Settings.Theme)
}

func (s *RouterTestSuite) Test_ContactThenReadAndDelete() {
	rr := s.do(http.MethodPost, "/api/contact", "", gin.H{"name": "Jane", "email": "jane@example.com", "message": "Hi"})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var created ContactResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &created))

	stored := s.store.Load(context.Background())
	s.Require().Len(stored.Messages, 1)
	s.Equal("General Inquiry", stored.Messages[0].Subject)
	s.Len(s.events.MessageEvents(), 1)

	token := s.login()
	rr = s.do(http.MethodPatch, "/api/admin/messages/"+created.ID+"/read", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.True(s.decodeDocument(rr).Document.Messages[0].IsRead)

	rr = s.do(http.MethodPatch, "/api/admin/messages/"+created.ID+"/read", token, gin.H{"isRead": true})
	s.True(s.decodeDocument(rr).Document.Messages[0].IsRead)

	rr = s.do(http.MethodDelete, "/api/admin/messages/"+created.ID, token, nil)
	s.Empty(s.decodeDocument(rr).Document.Messages)

	rr = s.do(http.MethodPost, "/api/contact", "", gin.H{"name": "Jane", "email": "not-an-email", "message": "Hi"})
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) Test_Chat() {
	rr := s.do(http.MethodPost, "/api/chat", "", gin.H{"message": "What do you do?"})
	s.Require().Equal(http.StatusOK, rr.Code)
	var resp ChatResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal("I build things.", resp.Reply)

	s.llm.Err = testutil.ErrInjected
	rr = s.do(http.MethodPost, "/api/chat", "", gin.H{"message": "Hello?"})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(chatUC.FallbackUnavailable, resp.Reply)

	rr = s.do(http.MethodGet, "/api/chat", "", nil)
	s.Contains(rr.Body.String(), "AI assistant")
}

func (s *RouterTestSuite) Test_UploadMedia() {
	token := s.login()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	s.Require().NoError(w.WriteField("target", "projectDocument"))
	s.Require().NoError(w.WriteField("projectId", "1"))
	part, err := w.CreateFormFile("file", "case-study.pdf")
	s.Require().NoError(err)
	_, err = part.Write([]byte("%PDF-1.4"))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/media", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var resp MediaResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.True(strings.HasPrefix(resp.URL, "https://cdn.test/portfolio/projectDocument/"))
	s.Equal(resp.URL, s.ws.Document().Projects[0].PDFData)

	rr = s.do(http.MethodDelete, "/api/admin/media/projectDocument?projectId=1", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.Empty(s.decodeDocument(rr).Document.Projects[0].PDFData)
}

func (s *RouterTestSuite) Test_Backup() {
	token := s.login()
	rr := s.do(http.MethodPost, "/api/admin/backup", token, nil)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	s.Len(s.uploader.Uploaded, 1)
}

func (s *RouterTestSuite) Test_FeedAndMetrics() {
	rr := s.do(http.MethodGet, "/api/feed.xml", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Header().Get("Content-Type"), "application/xml")
	s.Contains(rr.Body.String(), "<rss")

	rr = s.do(http.MethodGet, "/api/feed.xml?format=atom", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Header().Get("Content-Type"), "application/atom+xml")
	s.Contains(rr.Body.String(), "<feed")

	rr = s.do(http.MethodGet, "/api/feed.xml?format=json", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `"version"`)

	rr = s.do(http.MethodGet, "/api/feed.xml?format=yaml", "", nil)
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "http_requests_total")
	s.Contains(rr.Body.String(), "portfolio_messages_unread 0")
}

func (s *RouterTestSuite) Test_EditsRequireToken() {
	rr := s.do(http.MethodPost, "/api/admin/projects", "", gin.H{"title": "X"})
	s.Equal(http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodPost, "/api/admin/projects", "not-a-jwt", gin.H{"title": "X"})
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Len(s.ws.Document().Projects, 2)
}
