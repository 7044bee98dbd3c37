package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	authUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/workspace"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// AuthE2ETestSuite runs the login and save flow against the storage backend named in the
// project config.
type AuthE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	store    *document.Store
	release  func()
	username string
	testPass string
}

func (s *AuthE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}
	if cfg.Storage.Driver == config.StorageDriverFile {
		cfg.Storage.Dir = s.T().TempDir()
	}

	appLogger := logger.NewZapLogger("development")
	ctx := context.Background()

	storage, release, err := persistence.NewDocumentStorage(ctx, cfg, appLogger)
	if err != nil {
		s.T().Fatalf("E2E test failed to open storage: %v", err)
	}
	s.release = release

	s.username = "e2e_owner"
	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)

	s.store = document.NewStore(storage, "e2e_"+uuid.NewString(), appLogger)
	seed := portfolio.Default()
	seed.Settings.AdminUsername = s.username
	seed.Settings.AdminPassword = hash
	if err := s.store.Save(ctx, seed); err != nil {
		s.T().Fatalf("E2E test failed to seed document: %v", err)
	}

	ws := workspace.New(ctx, s.store, nil, appLogger)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, time.Hour)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))

	authHandler := NewAuthHandler(authUC.NewLoginUseCase(ws, jwtSvc, appLogger), authUC.NewLogoutUseCase(ws), appLogger)
	portfolioHandler := NewPortfolioHandler(ws, appLogger)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", authHandler.Login)
			adminPrivate := admin.Group("/")
			adminPrivate.Use(AuthMiddleware(jwtSvc, ws, appLogger))
			{
				adminPrivate.POST("/projects", portfolioHandler.CreateProject)
				adminPrivate.POST("/save", portfolioHandler.Save)
			}
		}
	}

	s.Router = router
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.release != nil {
		s.release()
	}
}

func TestAuthE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) post(path, token string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *AuthE2ETestSuite) Test_Login_Save_Flow() {
	rrBad := s.post("/api/admin/auth/login", "", gin.H{"username": s.username, "password": "wrongpassword"})
	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	rrGood := s.post("/api/admin/auth/login", "", gin.H{"username": s.username, "password": s.testPass})
	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse map[string]string
	json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	accessToken := loginResponse["access_token"]
	assert.NotEmpty(s.T(), accessToken)

	rrNoAuth := s.post("/api/admin/projects", "", gin.H{"title": "E2E"})
	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)

	rrCreate := s.post("/api/admin/projects", accessToken, gin.H{"title": "E2E"})
	assert.Equal(s.T(), http.StatusCreated, rrCreate.Code)

	rrSave := s.post("/api/admin/save", accessToken, nil)
	assert.Equal(s.T(), http.StatusOK, rrSave.Code)

	stored := s.store.Load(context.Background())
	if assert.Len(s.T(), stored.Projects, 3) {
		assert.Equal(s.T(), "E2E", stored.Projects[0].Title)
	}
	assert.Equal(s.T(), s.username, stored.Settings.AdminUsername)
}
