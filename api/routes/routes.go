package routes

import (
	"github.com/delizza/mailing-backend/internal/config"
	"github.com/delizza/mailing-backend/internal/handlers"
	"github.com/delizza/mailing-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerDependencies groups the handlers the router needs
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	CampaignHandler    *handlers.CampaignHandler
	TemplateHandler    *handlers.TemplateHandler
	SubscriberHandler  *handlers.SubscriberHandler
	UnsubscribeHandler *handlers.UnsubscribeHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, logger *zap.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// The unsubscribe link lands here straight from an email client; it
	// must stay unauthenticated and always answer with a page.
	router.GET("/unsubscribe", deps.UnsubscribeHandler.Unsubscribe)

	// Protected routes, admin only
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	protected.Use(middleware.AdminOnlyMiddleware())
	{
		protected.POST("/auth/register", deps.AuthHandler.Register)

		campaigns := protected.Group("/campaigns")
		{
			campaigns.GET("", deps.CampaignHandler.GetAllCampaigns)
			campaigns.GET("/count", deps.CampaignHandler.GetCampaignCount)
			campaigns.GET("/:id", deps.CampaignHandler.GetCampaignByID)
			campaigns.POST("", deps.CampaignHandler.CreateCampaign)
			campaigns.POST("/:id/send", deps.CampaignHandler.SendCampaign)
			campaigns.PUT("/:id", deps.CampaignHandler.UpdateCampaign)
			campaigns.DELETE("/:id", deps.CampaignHandler.DeleteCampaign)
		}

		templates := protected.Group("/templates")
		{
			templates.GET("", deps.TemplateHandler.GetAllTemplates)
			templates.GET("/count", deps.TemplateHandler.GetTemplateCount)
			templates.GET("/:id", deps.TemplateHandler.GetTemplateByID)
			templates.GET("/name/:name", deps.TemplateHandler.GetTemplateByName)
			templates.POST("", deps.TemplateHandler.CreateTemplate)
			templates.PUT("/:id", deps.TemplateHandler.UpdateTemplate)
			templates.DELETE("/:id", deps.TemplateHandler.DeleteTemplate)
		}

		subscribers := protected.Group("/subscribers")
		{
			subscribers.GET("", deps.SubscriberHandler.GetAllSubscribers)
			subscribers.GET("/count", deps.SubscriberHandler.GetSubscriberCount)
			subscribers.GET("/:id", deps.SubscriberHandler.GetSubscriberByID)
			subscribers.GET("/email/:email", deps.SubscriberHandler.GetSubscriberByEmail)
			subscribers.POST("", deps.SubscriberHandler.CreateSubscriber)
			subscribers.PUT("/:id", deps.SubscriberHandler.UpdateSubscriber)
			subscribers.DELETE("/:id", deps.SubscriberHandler.DeleteSubscriber)
		}
	}

	return router
}
