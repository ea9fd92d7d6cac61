package venue

import (
	"github.com/gin-gonic/gin"
	mw "github.com/tunislock/tunislock-api/internal/middleware"
	"github.com/tunislock/tunislock-api/pkg/rmiddleware"
	"gorm.io/gorm"
)

// VenueRoutes sets up all venue-related routes.
func VenueRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewVenueRepository(db)
	controller := NewVenueController(repo)

	// Public reads
	public := router.Group("/venues")
	{
		public.GET("", controller.GetAllVenues)
		public.GET("/:venue_id", controller.GetVenueByID)
	}

	// Authenticated writes
	protected := router.Group("/venues")
	protected.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		protected.POST("", controller.CreateVenue)
		protected.PUT("/:venue_id", controller.UpdateVenue)
	}

	// Admin only
	admin := router.Group("/admin/venues")
	admin.Use(mw.AuthMiddleware(jwtSecret, db))
	admin.Use(rmiddleware.AdminMiddleware(db))
	{
		admin.DELETE("/:venue_id", controller.DeleteVenue)
		admin.POST("/:venue_id/verify", controller.VerifyVenue)
	}
}
