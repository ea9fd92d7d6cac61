package match

import (
	"github.com/gin-gonic/gin"
	mw "github.com/tunislock/tunislock-api/internal/middleware"
	"github.com/tunislock/tunislock-api/internal/notification"
	"github.com/tunislock/tunislock-api/pkg/rmiddleware"
	"gorm.io/gorm"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, notifier notification.Dispatcher, jwtSecret string) {
	matchRepo := NewGormMatchRepository(db)
	matchController := NewMatchController(matchRepo, notifier)

	authRoutes := router.Group("/matches")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("", matchController.CreateMatch)
		authRoutes.GET("", matchController.GetOpenMatches)
		authRoutes.GET("/created", matchController.GetMyCreatedMatches)
		authRoutes.GET("/joined", matchController.GetMyJoinedMatches)
		authRoutes.GET("/:id", matchController.GetMatchDetails)

		// Roster transitions
		authRoutes.POST("/:id/join", matchController.JoinMatch)
		authRoutes.POST("/:id/creator-join", matchController.CreatorJoinMatch)
		authRoutes.POST("/:id/leave", matchController.LeaveMatch)
		authRoutes.POST("/:id/cancel", matchController.CancelMatch)
		authRoutes.POST("/:id/complete", matchController.CompleteMatch)
	}

	// Admin match routes
	adminRoutes := router.Group("/admin/matches")
	adminRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware(db))
	{
		adminRoutes.POST("/expire", matchController.ExpireStaleMatches)
	}
}
