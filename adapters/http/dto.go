package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	chatUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/chat"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

// Auth DTOs
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type SessionResponse struct {
	Username          string `json:"username"`
	IsAdmin           bool   `json:"isAdmin"`
	HasUnsavedChanges bool   `json:"hasUnsavedChanges"`
}

// Document DTOs
type DocumentResponse struct {
	ID                string              `json:"id,omitempty"`
	HasUnsavedChanges bool                `json:"hasUnsavedChanges"`
	Document          *portfolio.Document `json:"document"`
}

type OverviewResponse struct {
	Stats             portfolio.Stats `json:"stats"`
	HasUnsavedChanges bool            `json:"hasUnsavedChanges"`
	Theme             portfolio.Theme `json:"theme"`
}

type SocialLinkRequest struct {
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url"`
}

type VisibilityRequest struct {
	IsVisible *bool `json:"isVisible" binding:"required"`
}

type ReadRequest struct {
	IsRead *bool `json:"isRead"`
}

// Visitor DTOs
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type ContactResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ChatGreetingResponse struct {
	Greeting string `json:"greeting"`
}

func ToChatGreetingResponse(doc *portfolio.Document) ChatGreetingResponse {
	return ChatGreetingResponse{Greeting: chatUC.Greeting(doc.Profile.Name)}
}

// Media DTOs
type MediaResponse struct {
	URL               string `json:"url"`
	HasUnsavedChanges bool   `json:"hasUnsavedChanges"`
}

type BackupResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Bytes    int    `json:"bytes"`
}

// bindOptionalJSON decodes the body into v when there is one; an empty body keeps v as it was.
func bindOptionalJSON(c *gin.Context, v any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return apperror.NewInvalidInput("invalid request data", err)
	}
	return nil
}
