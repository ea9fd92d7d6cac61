package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/tunislock/tunislock-api/config"
	"github.com/tunislock/tunislock-api/internal/auth"
	"github.com/tunislock/tunislock-api/internal/leaderboard"
	"github.com/tunislock/tunislock-api/internal/match"
	"github.com/tunislock/tunislock-api/internal/notification"
	"github.com/tunislock/tunislock-api/internal/rating"
	"github.com/tunislock/tunislock-api/internal/social"
	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/internal/venue"
)

// SetupRoutes wires every feature router onto a fresh engine. The rating
// aggregator is created in main so the process owns its worker lifecycle.
func SetupRoutes(db *gorm.DB, appConfig *config.Config, aggregator *rating.Aggregator) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Tunis Lock</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Tunis Lock ⚽</h1>
					<p>Pickup football, sorted. See <a href="/swagger/index.html">the API docs</a>.</p>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	notifier := notification.NewDBDispatcher(db)
	jwtSecret := appConfig.JWT.AccessTokenSecret

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	user.UserRoutes(api, db, jwtSecret)
	match.MatchRoutes(api, db, notifier, jwtSecret)
	venue.VenueRoutes(api, db, jwtSecret)
	rating.RatingRoutes(api, db, aggregator, notifier, jwtSecret)
	social.SocialRoutes(api, db, notifier, jwtSecret)
	leaderboard.LeaderboardRoutes(api, db)
	notification.NotificationRoutes(api, db, jwtSecret)

	return r
}
