package rating

import (
	"github.com/gin-gonic/gin"
	mw "github.com/tunislock/tunislock-api/internal/middleware"
	"github.com/tunislock/tunislock-api/internal/notification"
	"gorm.io/gorm"
)

// RatingRoutes sets up the rating endpoints. The aggregator is shared with
// main so its worker lifecycle is owned by the process, not the router.
func RatingRoutes(router *gin.RouterGroup, db *gorm.DB, aggregator *Aggregator, notifier notification.Dispatcher, jwtSecret string) {
	repo := NewGormRatingRepository(db)
	controller := NewRatingController(repo, aggregator, notifier)

	matchRatings := router.Group("/matches/:id/ratings")
	matchRatings.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		matchRatings.POST("", controller.SubmitRating)
		matchRatings.GET("/pending", controller.GetPlayersToRate)
	}

	me := router.Group("/users/me")
	me.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		me.GET("/suggestions", controller.GetMySuggestions)
	}
}
