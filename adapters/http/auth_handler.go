package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type AuthHandler struct {
	loginUseCase  *auth.LoginUseCase
	logoutUseCase *auth.LogoutUseCase
	logger        logger.Logger
}

func NewAuthHandler(loginUC *auth.LoginUseCase, logoutUC *auth.LogoutUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUC,
		logoutUseCase: logoutUC,
		logger:        log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("username and password are required", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: output.AccessToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.logoutUseCase.Execute(c.Request.Context())
	c.Status(http.StatusNoContent)
}
