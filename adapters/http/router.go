package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const serviceName = "portfolio-cms-api"

type Handlers struct {
	Auth      *AuthHandler
	Portfolio *PortfolioHandler
	Contact   *ContactHandler
	Chat      *ChatHandler
	Media     *MediaHandler
	Feed      *FeedHandler
}

type RouterDeps struct {
	JWT      *auth.JWTService
	Sessions SessionChecker
	Metrics  *Metrics
	Logger   logger.Logger
}

func NewRouter(h Handlers, deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(deps.Logger), RequestID(), Tracing(serviceName), RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.Use(ErrorMiddleware(deps.Logger))

	authMiddleware := AuthMiddleware(deps.JWT, deps.Sessions, deps.Logger)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/portfolio", h.Portfolio.GetPublicPortfolio)
		api.GET("/projects", h.Portfolio.ListPublicProjects)
		api.GET("/chat", h.Portfolio.GetChatGreeting)
		api.POST("/chat", h.Chat.Chat)
		api.POST("/contact", h.Contact.Submit)
		api.GET("/feed.xml", h.Feed.Feed)

		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", h.Auth.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				adminPrivate.POST("/auth/logout", h.Auth.Logout)
				adminPrivate.GET("/session", h.Portfolio.GetSession)
				adminPrivate.GET("/portfolio", h.Portfolio.GetPortfolio)
				adminPrivate.GET("/overview", h.Portfolio.GetOverview)
				adminPrivate.PUT("/sections/:section", h.Portfolio.ReplaceSection)
				adminPrivate.PUT("/profile", h.Portfolio.UpdateProfile)
				adminPrivate.PUT("/profile/socials", h.Portfolio.SetSocialLink)

				projects := adminPrivate.Group("/projects")
				{
					projects.POST("", h.Portfolio.CreateProject)
					projects.PUT("/:id", h.Portfolio.UpdateProject)
					projects.DELETE("/:id", h.Portfolio.DeleteProject)
					projects.PATCH("/:id/visibility", h.Portfolio.SetProjectVisibility)
					projects.PATCH("/:id/featured", h.Portfolio.ToggleProjectFeatured)
				}

				skills := adminPrivate.Group("/skills")
				{
					skills.POST("", h.Portfolio.CreateSkill)
					skills.PUT("/:id", h.Portfolio.UpdateSkill)
					skills.DELETE("/:id", h.Portfolio.DeleteSkill)
				}

				experience := adminPrivate.Group("/experience")
				{
					experience.POST("", h.Portfolio.CreateExperience)
					experience.PUT("/:id", h.Portfolio.UpdateExperience)
					experience.DELETE("/:id", h.Portfolio.DeleteExperience)
				}

				education := adminPrivate.Group("/education")
				{
					education.POST("", h.Portfolio.CreateEducation)
					education.PUT("/:id", h.Portfolio.UpdateEducation)
					education.DELETE("/:id", h.Portfolio.DeleteEducation)
				}

				messages := adminPrivate.Group("/messages")
				{
					messages.PATCH("/:id/read", h.Portfolio.SetMessageRead)
					messages.DELETE("/:id", h.Portfolio.DeleteMessage)
				}

				adminPrivate.PUT("/settings", h.Portfolio.UpdateSettings)
				adminPrivate.POST("/settings/theme", h.Portfolio.ToggleTheme)
				adminPrivate.POST("/save", h.Portfolio.Save)
				adminPrivate.POST("/reload", h.Portfolio.Reload)
				adminPrivate.POST("/media", h.Media.UploadMedia)
				adminPrivate.DELETE("/media/:target", h.Media.ClearMedia)
				adminPrivate.POST("/backup", h.Media.Backup)
			}
		}
	}
	return router
}
