package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/workspace"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// PortfolioHandler serves the document as a whole: public reads and the owner's section,
// profile, settings, save and reload operations.
type PortfolioHandler struct {
	ws     *workspace.Workspace
	logger logger.Logger
}

func NewPortfolioHandler(ws *workspace.Workspace, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{ws: ws, logger: log}
}

func (h *PortfolioHandler) GetPublicPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.Document().Public())
}

func (h *PortfolioHandler) ListPublicProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.Document().VisibleProjects())
}

func (h *PortfolioHandler) GetChatGreeting(c *gin.Context) {
	c.JSON(http.StatusOK, ToChatGreetingResponse(h.ws.Document()))
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, h.documentResponse("", h.ws.Document()))
}

func (h *PortfolioHandler) GetSession(c *gin.Context) {
	username, _ := GetUsernameFromGinContext(c)
	c.JSON(http.StatusOK, SessionResponse{
		Username:          username,
		IsAdmin:           h.ws.IsAdmin(),
		HasUnsavedChanges: h.ws.HasUnsavedChanges(),
	})
}

func (h *PortfolioHandler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, OverviewResponse{
		Stats:             h.ws.Stats(),
		HasUnsavedChanges: h.ws.HasUnsavedChanges(),
		Theme:             h.ws.Document().Settings.Theme,
	})
}

// ReplaceSection swaps one top-level section for the JSON body.
func (h *PortfolioHandler) ReplaceSection(c *gin.Context) {
	section, err := portfolio.ParseSection(c.Param("section"))
	if err != nil {
		c.Error(apperror.NewNotFound("Section", c.Param("section")))
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read request body", err))
		return
	}
	h.edit(c, http.StatusOK, "", func(d *portfolio.Document) (*portfolio.Document, error) {
		next, err := editor.ReplaceSectionJSON(d, section, raw)
		if err != nil || section != portfolio.SectionSettings {
			return next, err
		}
		return next, protectPassword(d.Settings.AdminPassword, &next.Settings)
	})
}

// protectPassword keeps the previous admin password when the new settings omit it, since
// responses never include it, and hashes a plaintext one.
func protectPassword(previous string, s *portfolio.Settings) error {
	if s.AdminPassword == "" {
		s.AdminPassword = previous
		return nil
	}
	if auth.IsPasswordHash(s.AdminPassword) {
		return nil
	}
	hash, err := auth.HashPassword(s.AdminPassword)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}
	s.AdminPassword = hash
	return nil
}

func (h *PortfolioHandler) UpdateProfile(c *gin.Context) {
	var patch editor.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	h.edit(c, http.StatusOK, "", func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.UpdateProfile(d, patch)
	})
}

func (h *PortfolioHandler) SetSocialLink(c *gin.Context) {
	var req SocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	h.edit(c, http.StatusOK, "", func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.SetSocialLink(d, req.Platform, req.URL)
	})
}

// UpdateSettings hashes a new admin password with bcrypt before it enters the document.
func (h *PortfolioHandler) UpdateSettings(c *gin.Context) {
	var patch editor.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	if patch.AdminPassword != nil {
		if *patch.AdminPassword == "" {
			c.Error(apperror.NewInvalidInput("admin password must not be empty", nil))
			return
		}
		hash, err := auth.HashPassword(*patch.AdminPassword)
		if err != nil {
			c.Error(apperror.NewInternal("failed to hash password", err))
			return
		}
		patch.AdminPassword = &hash
	}
	h.edit(c, http.StatusOK, "", func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.UpdateSettings(d, patch)
	})
}

func (h *PortfolioHandler) ToggleTheme(c *gin.Context) {
	h.edit(c, http.StatusOK, "", editor.ToggleTheme)
}

func (h *PortfolioHandler) Save(c *gin.Context) {
	if err := h.ws.Save(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.documentResponse("", h.ws.Document()))
}

func (h *PortfolioHandler) Reload(c *gin.Context) {
	if err := h.ws.Reload(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.documentResponse("", h.ws.Document()))
}

func (h *PortfolioHandler) edit(c *gin.Context, status int, id string, fn workspace.EditFunc) {
	doc, err := h.ws.Edit(fn)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(status, h.documentResponse(id, doc))
}

func (h *PortfolioHandler) documentResponse(id string, doc *portfolio.Document) DocumentResponse {
	doc.Settings.AdminPassword = ""
	return DocumentResponse{
		ID:                id,
		HasUnsavedChanges: h.ws.HasUnsavedChanges(),
		Document:          doc,
	}
}
