package user

import (
	"github.com/gin-gonic/gin"
	mw "github.com/tunislock/tunislock-api/internal/middleware"
	"gorm.io/gorm"
)

// UserRoutes sets up the user profile endpoints.
func UserRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewGormUserRepository(db)
	controller := NewUserController(repo)

	users := router.Group("/users")
	{
		users.GET("/:id", controller.GetPublicProfile)
	}

	me := router.Group("/users/me")
	me.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		me.GET("", controller.GetMyProfile)
		me.PUT("", controller.UpdateMyProfile)
	}
}
