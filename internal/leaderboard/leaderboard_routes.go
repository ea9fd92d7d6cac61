package leaderboard

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LeaderboardRoutes sets up the public leaderboard endpoint.
func LeaderboardRoutes(router *gin.RouterGroup, db *gorm.DB) {
	controller := NewLeaderboardController(db)
	router.GET("/leaderboard", controller.GetLeaderboard)
}
