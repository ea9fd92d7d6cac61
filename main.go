package main

import (
	"log"

	"github.com/tunislock/tunislock-api/config"
	_ "github.com/tunislock/tunislock-api/docs"
	"github.com/tunislock/tunislock-api/internal/match"
	"github.com/tunislock/tunislock-api/internal/notification"
	"github.com/tunislock/tunislock-api/internal/rating"
	"github.com/tunislock/tunislock-api/internal/social"
	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/internal/venue"
	"github.com/tunislock/tunislock-api/routes"
)

// @title Tunis Lock REST API
// @version 1.0
// @description Backend for the Tunis Lock pickup football matchmaking app ⚽
// @host localhost:8090
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()
	db := config.DB

	err := db.AutoMigrate(
		&user.User{}, &user.Role{}, &user.RefreshToken{}, &user.SkillProfile{},
		&venue.Venue{},
		&match.Match{}, &match.Participant{},
		&rating.PlayerRating{},
		&social.FriendRequest{}, &social.UserBlock{}, &social.MatchInvitation{},
		&notification.Notification{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	aggregator := rating.NewAggregator(db, rating.NewGormRatingRepository(db), cfg.Rating.QueueSize)
	aggregator.Start()
	defer aggregator.Stop()

	r := routes.SetupRoutes(db, cfg, aggregator)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
