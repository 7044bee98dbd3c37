package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	mediaUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/workspace"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type MediaHandler struct {
	uploadMediaUC *mediaUC.UploadMediaUseCase
	clearMediaUC  *mediaUC.ClearMediaUseCase
	backupUC      *backupUC.BackupUseCase
	ws            *workspace.Workspace
	logger        logger.Logger
}

// NewMediaHandler accepts a nil backup use case when no remote storage is configured.
func NewMediaHandler(
	uploadUC *mediaUC.UploadMediaUseCase,
	clearUC *mediaUC.ClearMediaUseCase,
	backup *backupUC.BackupUseCase,
	ws *workspace.Workspace,
	log logger.Logger,
) *MediaHandler {
	return &MediaHandler{
		uploadMediaUC: uploadUC,
		clearMediaUC:  clearUC,
		backupUC:      backup,
		ws:            ws,
		logger:        log,
	}
}

// UploadMedia takes a multipart form: file, target and, for project targets, projectId.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	out, err := h.uploadMediaUC.Execute(c.Request.Context(), mediaUC.UploadMediaInput{
		Target:    mediaUC.Target(c.PostForm("target")),
		ProjectID: c.PostForm("projectId"),
		File:      file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, MediaResponse{URL: out.URL, HasUnsavedChanges: h.ws.HasUnsavedChanges()})
}

// ClearMedia empties the field named by :target; project targets take ?projectId=.
func (h *MediaHandler) ClearMedia(c *gin.Context) {
	doc, err := h.clearMediaUC.Execute(c.Request.Context(), mediaUC.ClearMediaInput{
		Target:    mediaUC.Target(c.Param("target")),
		ProjectID: c.Query("projectId"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	doc.Settings.AdminPassword = ""
	c.JSON(http.StatusOK, DocumentResponse{HasUnsavedChanges: h.ws.HasUnsavedChanges(), Document: doc})
}

func (h *MediaHandler) Backup(c *gin.Context) {
	if h.backupUC == nil {
		c.Error(apperror.NewInvalidInput("backup storage is not configured", nil))
		return
	}
	out, err := h.backupUC.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, BackupResponse{URL: out.URL, PublicID: out.PublicID, Bytes: out.Bytes})
}
