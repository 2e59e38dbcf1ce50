package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/career-path/pkg/auth"
	"github.com/khoahotran/career-path/pkg/logger"
)

type Handlers struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	RSS      *RSSHandler
	Chat     *ChatHandler
	Profile  *ProfileHandler
	Feedback *FeedbackHandler
	Team     *TeamHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, requestTimeout time.Duration, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log), TimeoutMiddleware(requestTimeout))

	authMiddleware := AuthMiddleware(jwtSvc, log)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)

		api.GET("/careers", h.Catalog.ListCareers)
		api.GET("/careers/categories", h.Catalog.CareerCategories)
		api.GET("/careers/popular", h.Catalog.PopularCareers)
		api.GET("/careers/:id", h.Catalog.GetCareer)
		api.GET("/courses/:id", h.Catalog.GetCourse)
		api.GET("/scholarships", h.Catalog.ListScholarships)
		api.GET("/scholarships/facets", h.Catalog.ScholarshipFacets)
		api.GET("/updates", h.Catalog.ListUpdates)
		api.GET("/updates/featured", h.Catalog.FeaturedUpdates)
		api.GET("/updates/rss", h.RSS.GenerateRSS)

		api.POST("/chat", h.Chat.Chat)
		api.GET("/chat/quick-replies", h.Chat.QuickReplies)

		api.POST("/contact", h.Feedback.Submit)
		api.GET("/team", h.Team.List)

		me := api.Group("/me")
		me.Use(authMiddleware)
		{
			me.GET("/profile", h.Profile.GetProfile)
			me.PUT("/profile/goals", h.Profile.UpdateGoals)
			me.POST("/careers/:id/toggle", h.Profile.ToggleCareer)
			me.DELETE("/careers/:id", h.Profile.RemoveCareer)
			me.POST("/scholarships/:id/toggle", h.Profile.ToggleScholarship)
			me.DELETE("/scholarships/:id", h.Profile.RemoveScholarship)
			me.POST("/courses/:id/steps/:step/toggle", h.Profile.ToggleStep)
			me.GET("/courses/:id/progress", h.Profile.CourseProgress)
			me.GET("/progress", h.Profile.ProgressSummary)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware, RequireAdmin())
		{
			admin.GET("/feedback", h.Feedback.List)
			admin.DELETE("/feedback/:id", h.Feedback.Delete)
			admin.GET("/feedback/stats", h.Feedback.StatsByState)
		}

		teamAdmin := api.Group("/team")
		teamAdmin.Use(authMiddleware, RequireAdmin())
		{
			teamAdmin.POST("", h.Team.Create)
			teamAdmin.PUT("/:id", h.Team.Update)
			teamAdmin.DELETE("/:id", h.Team.Delete)
			teamAdmin.POST("/:id/photo", h.Team.UploadPhoto)
		}
	}

	return router
}
