package social

import (
	"github.com/gin-gonic/gin"
	mw "github.com/tunislock/tunislock-api/internal/middleware"
	"github.com/tunislock/tunislock-api/internal/notification"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"github.com/tunislock/tunislock-api/pkg/utils"
	"gorm.io/gorm"
)

// sendSocialError translates a typed repository error into the package's
// JSON error helpers.
func sendSocialError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		c.JSON(apperrors.HTTPStatus(err), utils.ErrorResponse{Error: err.Error()})
	case apperrors.KindValidation:
		utils.BadRequestJSON(c, err.Error())
	case apperrors.KindConflict:
		utils.ConflictJSON(c, err.Error())
	case apperrors.KindAuthorization:
		utils.ForbiddenJSON(c)
	case apperrors.KindInvalidState:
		c.JSON(apperrors.HTTPStatus(err), utils.ErrorResponse{Error: err.Error()})
	default:
		utils.InternalErrorJSON(c, err)
	}
}

// SocialRoutes sets up friend, block and invitation endpoints.
func SocialRoutes(router *gin.RouterGroup, db *gorm.DB, notifier notification.Dispatcher, jwtSecret string) {
	repo := NewGormSocialRepository(db)
	controller := NewSocialController(repo, notifier)

	friends := router.Group("/friends")
	friends.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		friends.GET("", controller.GetFriends)
		friends.DELETE("/:id", controller.Unfriend)
		friends.POST("/requests", controller.SendFriendRequest)
		friends.GET("/requests", controller.GetPendingRequests)
		friends.POST("/requests/:id/respond", controller.RespondToFriendRequest)
	}

	blocks := router.Group("/blocks")
	blocks.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		blocks.POST("/:id", controller.BlockUser)
		blocks.DELETE("/:id", controller.UnblockUser)
	}

	invitations := router.Group("/invitations")
	invitations.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		invitations.POST("", controller.InviteToMatch)
		invitations.GET("", controller.GetMyInvitations)
		invitations.POST("/:code/respond", controller.RespondToInvitation)
	}
}
