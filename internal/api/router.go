package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))

	requireAuth := authMiddleware(services.Auth)

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	chatHandler := NewChatHandler(services, log)
	fileHandler := NewFileHandler(services, cfg, log)
	authHandler := NewAuthHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services.Health))
	router.GET("/metrics", metricsHandler(services))
	router.GET("/metrics/prometheus", gin.WrapH(promhttp.Handler()))

	apiRoutes := router.Group("/api")
	{
		// Article endpoints
		articles := apiRoutes.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.POST("", requireAuth, articleHandler.CreateArticle)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.PUT("/:id", requireAuth, articleHandler.UpdateArticle)
			articles.DELETE("/:id", requireAuth, articleHandler.DeleteArticle)

			// Comment endpoints
			articles.GET("/:id/comments", commentHandler.ListComments)
			articles.POST("/:id/comments", commentHandler.CreateComment)
		}

		// Chat endpoints
		chat := apiRoutes.Group("/chat")
		{
			chat.GET("", requireAuth, chatHandler.ListMessages)
			chat.POST("", chatHandler.SendMessage)
			chat.PUT("/:id/read", requireAuth, chatHandler.MarkAsRead)
		}

		apiRoutes.POST("/files/upload", requireAuth, fileHandler.Upload)
		apiRoutes.POST("/auth/login", authHandler.Login)
	}

	return router
}

// healthCheck returns the health status, including a database ping
func healthCheck(checker service.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if checker != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := checker.HealthCheck(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
		})
	}
}

// metricsHandler returns entity counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCount, _ := services.Stats.GetCount(ctx, service.ResourceUsers)
		articlesCount, _ := services.Stats.GetCount(ctx, service.ResourceArticles)
		commentsCount, _ := services.Stats.GetCount(ctx, service.ResourceComments)
		chatCount, _ := services.Stats.GetCount(ctx, service.ResourceChatMessages)
		unreadCount, _ := services.Stats.GetCount(ctx, service.ResourceUnreadChat)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"users":         usersCount,
				"articles":      articlesCount,
				"comments":      commentsCount,
				"chat_messages": chatCount,
				"unread_chat":   unreadCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
