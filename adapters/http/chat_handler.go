package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/chat"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/workspace"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type ChatHandler struct {
	chatUseCase *chatUC.ChatUseCase
	ws          *workspace.Workspace
	logger      logger.Logger
}

func NewChatHandler(uc *chatUC.ChatUseCase, ws *workspace.Workspace, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: uc,
		ws:          ws,
		logger:      log,
	}
}

// Chat answers from the document as it is in memory, unsaved edits included. Assistant failures
// come back as a normal reply carrying the fallback text.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("message is required", err))
		return
	}

	reply := h.chatUseCase.Ask(c.Request.Context(), req.Message, h.ws.Document())
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
