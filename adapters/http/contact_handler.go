package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type ContactHandler struct {
	submitUseCase *contactUC.SubmitMessageUseCase
	logger        logger.Logger
}

func NewContactHandler(uc *contactUC.SubmitMessageUseCase, log logger.Logger) *ContactHandler {
	return &ContactHandler{submitUseCase: uc, logger: log}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("name, a valid email and message are required", err))
		return
	}

	out, err := h.submitUseCase.Execute(c.Request.Context(), contactUC.SubmitMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ContactResponse{ID: out.Message.ID, Date: out.Message.Date})
}
