package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

// Project, skill, experience, education and message routes. Every route goes through the
// workspace and leaves the change unsaved.

func (h *PortfolioHandler) CreateProject(c *gin.Context) {
	p := editor.NewProject()
	if err := bindOptionalJSON(c, &p); err != nil {
		c.Error(err)
		return
	}
	if p.ID == "" {
		p.ID = portfolio.NewID()
	}
	h.edit(c, http.StatusCreated, p.ID, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.AddProject(d, p)
	})
}

func (h *PortfolioHandler) UpdateProject(c *gin.Context) {
	var patch editor.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.UpdateProject(d, id, patch)
	})
}

func (h *PortfolioHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.DeleteProject(d, id)
	})
}

func (h *PortfolioHandler) SetProjectVisibility(c *gin.Context) {
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("isVisible is required", err))
		return
	}
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.SetProjectVisibility(d, id, *req.IsVisible)
	})
}

func (h *PortfolioHandler) ToggleProjectFeatured(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.ToggleProjectFeatured(d, id)
	})
}

func (h *PortfolioHandler) CreateSkill(c *gin.Context) {
	s := editor.NewSkill()
	if err := bindOptionalJSON(c, &s); err != nil {
		c.Error(err)
		return
	}
	if s.ID == "" {
		s.ID = portfolio.NewID()
	}
	h.edit(c, http.StatusCreated, s.ID, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.AddSkill(d, s)
	})
}

func (h *PortfolioHandler) UpdateSkill(c *gin.Context) {
	var patch editor.SkillPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.UpdateSkill(d, id, patch)
	})
}

func (h *PortfolioHandler) DeleteSkill(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.DeleteSkill(d, id)
	})
}

func (h *PortfolioHandler) CreateExperience(c *gin.Context) {
	e := editor.NewExperience()
	if err := bindOptionalJSON(c, &e); err != nil {
		c.Error(err)
		return
	}
	if e.ID == "" {
		e.ID = portfolio.NewID()
	}
	h.edit(c, http.StatusCreated, e.ID, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.AddExperience(d, e)
	})
}

func (h *PortfolioHandler) UpdateExperience(c *gin.Context) {
	var patch editor.ExperiencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.UpdateExperience(d, id, patch)
	})
}

func (h *PortfolioHandler) DeleteExperience(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.DeleteExperience(d, id)
	})
}

func (h *PortfolioHandler) CreateEducation(c *gin.Context) {
	e := editor.NewEducation()
	if err := bindOptionalJSON(c, &e); err != nil {
		c.Error(err)
		return
	}
	if e.ID == "" {
		e.ID = portfolio.NewID()
	}
	h.edit(c, http.StatusCreated, e.ID, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.AddEducation(d, e)
	})
}

func (h *PortfolioHandler) UpdateEducation(c *gin.Context) {
	var patch editor.EducationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.UpdateEducation(d, id, patch)
	})
}

func (h *PortfolioHandler) DeleteEducation(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.DeleteEducation(d, id)
	})
}

// SetMessageRead sets the read flag from the body, or toggles it when the body has none.
func (h *PortfolioHandler) SetMessageRead(c *gin.Context) {
	var req ReadRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		if req.IsRead == nil {
			return editor.ToggleMessageRead(d, id)
		}
		return editor.MarkMessageRead(d, id, *req.IsRead)
	})
}

func (h *PortfolioHandler) DeleteMessage(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, http.StatusOK, id, func(d *portfolio.Document) (*portfolio.Document, error) {
		return editor.DeleteMessage(d, id)
	})
}
