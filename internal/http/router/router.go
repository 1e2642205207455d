package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffhub/staffing-backend/internal/config"
	"github.com/staffhub/staffing-backend/internal/http/handlers"
	"github.com/staffhub/staffing-backend/internal/http/middleware"
	"github.com/staffhub/staffing-backend/internal/service"
)

// SetupRouter собирает все маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	orderHandler *handlers.OrderHandler,
	replyHandler *handlers.ReplyHandler,
	userHandler *handlers.UserHandler,
	notificationHandler *handlers.NotificationHandler,
	photoHandler *handlers.PhotoHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/photos/files", http.Dir(cfg.PhotoStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", userHandler.GetMe)
		protected.PUT("/profile", userHandler.UpdateMe)

		protected.GET("/orders", orderHandler.ListOrders)
		protected.POST("/orders", middleware.RequireRole("contractor", "admin"), orderHandler.CreateOrder)
		protected.GET("/orders/:id", middleware.UUIDValidator("id"), orderHandler.GetOrder)
		protected.GET("/orders/:id/availability", middleware.UUIDValidator("id"), orderHandler.GetAvailability)
		protected.PUT("/orders/:id/status", middleware.UUIDValidator("id"), orderHandler.ChangeStatus)

		adminOrders := protected.Group("/orders")
		adminOrders.Use(middleware.RequireRole("admin"))
		{
			adminOrders.POST("/:id/take", middleware.UUIDValidator("id"), orderHandler.TakeOrder)
			adminOrders.POST("/:id/approve", middleware.UUIDValidator("id"), orderHandler.ApproveOrder)
			adminOrders.POST("/:id/disapprove", middleware.UUIDValidator("id"), orderHandler.DisapproveOrder)
		}

		protected.GET("/replies", replyHandler.ListReplies)
		protected.POST("/details/:detailId/replies",
			middleware.UUIDValidator("detailId"),
			middleware.RequireRole("contractee"),
			replyHandler.SubmitReply)
		protected.GET("/details/:detailId/replies/:contracteeId",
			middleware.UUIDValidator("detailId", "contracteeId"),
			replyHandler.GetReply)
		protected.PUT("/details/:detailId/replies/:contracteeId/status",
			middleware.UUIDValidator("detailId", "contracteeId"),
			middleware.RequireRole("contractor", "admin"),
			replyHandler.ChangeStatus)

		protected.GET("/users/:id", middleware.UUIDValidator("id"), userHandler.GetUser)
		adminUsers := protected.Group("/users")
		adminUsers.Use(middleware.RequireRole("admin"))
		{
			adminUsers.GET("", userHandler.ListUsers)
			adminUsers.PUT("/:id/status", middleware.UUIDValidator("id"), userHandler.ChangeStatus)
		}

		protected.GET("/notifications", notificationHandler.ListNotifications)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkRead)

		protected.POST("/photos", photoHandler.UploadPhoto)
		protected.DELETE("/photos", photoHandler.DeletePhoto)
	}

	return r
}
