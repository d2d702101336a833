package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/access"
	"github.com/class-union/union-server/internal/config"
	"github.com/class-union/union-server/internal/events"
	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/services"
	"github.com/class-union/union-server/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	postHandler         *PostHandler
	eventHandler        *EventHandler
	galleryHandler      *GalleryHandler
	chatHandler         *ChatHandler
	notificationHandler *NotificationHandler
	dashboardHandler    *DashboardHandler
	userHandler         *UserHandler
	fileHandler         *FileHandler
	authMiddleware      *CasdoorAuthMiddleware
	serviceManager      services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	bus *events.Bus,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, serviceManager.User())

	return &HandlerManager{
		authHandler:         NewAuthHandler(logger),
		postHandler:         NewPostHandler(serviceManager.Post(), logger),
		eventHandler:        NewEventHandler(serviceManager.Event(), logger),
		galleryHandler:      NewGalleryHandler(serviceManager.Gallery(), logger),
		chatHandler:         NewChatHandler(serviceManager.Chat(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), bus, logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		fileHandler:         NewFileHandler(serviceManager.File(), logger),
		authMiddleware:      authMiddleware,
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthCheck)

	// File relay. Downloads are public so stored URLs work in img tags
	// without an Authorization header; writes require authentication.
	router.GET("/api/files/:id", hm.fileHandler.Download)
	router.POST("/api/upload",
		hm.authMiddleware.AuthMiddleware(),
		hm.fileHandler.Upload)
	router.DELETE("/api/files/:id",
		hm.authMiddleware.AuthMiddleware(),
		hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin),
		hm.fileHandler.Delete)

	// Connectivity probe
	router.GET("/api/test-db", hm.testDB)

	// Public routes, enriched with user info when a token is present
	public := router.Group("/api/v1")
	public.Use(hm.authMiddleware.OptionalAuthMiddleware())
	{
		public.GET("/navigation", hm.authHandler.Navigation)
		public.GET("/posts", hm.postHandler.ListPosts)
		public.GET("/posts/:id", hm.postHandler.GetPost)
	}

	// Authenticated API
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.GET("/me", hm.authHandler.Me)
		}

		// Blog post writes
		posts := v1.Group("/posts")
		{
			posts.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudentFull, models.RoleAdmin), hm.postHandler.CreatePost)
			posts.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.postHandler.DeletePost)
		}

		// Event routes
		eventsGroup := v1.Group("/events")
		eventsGroup.Use(hm.authMiddleware.RequirePageMiddleware(access.PageEvents))
		{
			eventsGroup.GET("", hm.eventHandler.ListEvents)
			eventsGroup.GET("/:id", hm.eventHandler.GetEvent)
			eventsGroup.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.eventHandler.CreateEvent)
			eventsGroup.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.eventHandler.DeleteEvent)
		}

		// Gallery routes
		gallery := v1.Group("/gallery")
		gallery.Use(hm.authMiddleware.RequirePageMiddleware(access.PageGallery))
		{
			gallery.GET("", hm.galleryHandler.ListImages)
			gallery.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.galleryHandler.AddImage)
			gallery.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.galleryHandler.DeleteImage)
		}

		// Chat routes - any authenticated role
		chat := v1.Group("/chat")
		chat.Use(hm.authMiddleware.RequirePageMiddleware(access.PageChat))
		{
			chat.GET("/rooms/:room/messages", hm.chatHandler.GetMessages)
			chat.POST("/rooms/:room/messages", hm.chatHandler.SendMessage)
			chat.GET("/rooms/:room/stream", hm.chatHandler.StreamMessages)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.POST("/read", hm.notificationHandler.MarkAllRead)
			notifications.GET("/stream", hm.notificationHandler.StreamNotifications)
			notifications.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.notificationHandler.CreateNotification)
			notifications.POST("/broadcast", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.notificationHandler.Broadcast)
		}

		// User routes. The roster is admin-only; single profiles are
		// visible to any authenticated caller (chat display names).
		users := v1.Group("/users")
		{
			users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
		}

		// Dashboard routes - admin only
		dashboard := v1.Group("/dashboard")
		dashboard.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			dashboard.GET("/stats", hm.dashboardHandler.GetStats)
			dashboard.GET("/export", hm.dashboardHandler.ExportStats)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "union-server",
	})
}

func (hm *HandlerManager) testDB(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connection successful",
	})
}
