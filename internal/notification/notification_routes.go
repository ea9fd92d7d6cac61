package notification

import (
	"github.com/gin-gonic/gin"
	mw "github.com/tunislock/tunislock-api/internal/middleware"
	"gorm.io/gorm"
)

// NotificationRoutes sets up the notification endpoints.
func NotificationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	controller := NewNotificationController(db)

	routes := router.Group("/notifications")
	routes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		routes.GET("", controller.ListNotifications)
		routes.POST("/:id/read", controller.MarkRead)
	}
}
