package social

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunislock/tunislock-api/internal/common"
	"github.com/tunislock/tunislock-api/internal/notification"
	"github.com/tunislock/tunislock-api/pkg/utils"
)

// SocialController handles friend, block and invitation HTTP requests.
type SocialController struct {
	repo     SocialRepository
	notifier notification.Dispatcher
}

func NewSocialController(repo SocialRepository, notifier notification.Dispatcher) *SocialController {
	return &SocialController{
		repo:     repo,
		notifier: notifier,
	}
}

type FriendRequestInput struct {
	ReceiverID uint `json:"receiver_id" binding:"required"`
}

type RespondInput struct {
	Accept bool `json:"accept"`
}

type InviteInput struct {
	MatchID   uint `json:"match_id" binding:"required"`
	InviteeID uint `json:"invitee_id" binding:"required"`
}

// @Summary      Send a friend request
// @Tags         Social
// @Accept       json
// @Produce      json
// @Param        request body FriendRequestInput true "Receiver"
// @Success      201 {object} utils.SuccessResponse
// @Router       /friends/requests [post]
// @Security     Bearer
func (sc *SocialController) SendFriendRequest(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, err.Error())
		return
	}

	req, err := sc.repo.SendFriendRequest(userID, input.ReceiverID)
	if err != nil {
		sendSocialError(c, err)
		return
	}

	sc.notifier.Dispatch(input.ReceiverID, notification.TypeFriendRequest, notification.Payload{
		"request_id": req.ID,
		"sender_id":  userID,
	})

	utils.SuccessJSON(c, http.StatusCreated, "Friend request sent", req)
}

// @Summary      Respond to a friend request
// @Tags         Social
// @Accept       json
// @Produce      json
// @Param        id path int true "Request ID"
// @Param        response body RespondInput true "Accept or reject"
// @Success      200 {object} utils.SuccessResponse
// @Router       /friends/requests/{id}/respond [post]
// @Security     Bearer
func (sc *SocialController) RespondToFriendRequest(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestJSON(c, "Invalid request ID")
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, err.Error())
		return
	}

	req, err := sc.repo.RespondToFriendRequest(uint(id), userID, input.Accept)
	if err != nil {
		sendSocialError(c, err)
		return
	}

	if input.Accept {
		sc.notifier.Dispatch(req.SenderID, notification.TypeFriendAccepted, notification.Payload{
			"user_id": userID,
		})
	}

	utils.SuccessJSON(c, http.StatusOK, "Friend request "+string(req.Status), req)
}

// @Summary      List pending friend requests
// @Tags         Social
// @Produce      json
// @Success      200 {object} utils.SuccessResponse
// @Router       /friends/requests [get]
// @Security     Bearer
func (sc *SocialController) GetPendingRequests(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	requests, err := sc.repo.GetPendingRequests(userID)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, "Pending requests retrieved", requests)
}

// @Summary      List my friends
// @Tags         Social
// @Produce      json
// @Success      200 {object} utils.SuccessResponse
// @Router       /friends [get]
// @Security     Bearer
func (sc *SocialController) GetFriends(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	friends, err := sc.repo.GetFriends(userID)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, "Friends retrieved", friends)
}

// @Summary      Unfriend a user
// @Tags         Social
// @Produce      json
// @Param        id path int true "Friend user ID"
// @Success      200 {object} utils.SuccessResponse
// @Router       /friends/{id} [delete]
// @Security     Bearer
func (sc *SocialController) Unfriend(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestJSON(c, "Invalid user ID")
		return
	}

	if err := sc.repo.Unfriend(userID, uint(id)); err != nil {
		sendSocialError(c, err)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, "Unfriended successfully", nil)
}

// @Summary      Block a user
// @Tags         Social
// @Produce      json
// @Param        id path int true "User ID to block"
// @Success      200 {object} utils.SuccessResponse
// @Router       /blocks/{id} [post]
// @Security     Bearer
func (sc *SocialController) BlockUser(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestJSON(c, "Invalid user ID")
		return
	}

	if err := sc.repo.BlockUser(userID, uint(id)); err != nil {
		sendSocialError(c, err)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, "User blocked", nil)
}

// @Summary      Unblock a user
// @Tags         Social
// @Produce      json
// @Param        id path int true "User ID to unblock"
// @Success      200 {object} utils.SuccessResponse
// @Router       /blocks/{id} [delete]
// @Security     Bearer
func (sc *SocialController) UnblockUser(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestJSON(c, "Invalid user ID")
		return
	}

	if err := sc.repo.UnblockUser(userID, uint(id)); err != nil {
		sendSocialError(c, err)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, "User unblocked", nil)
}

// @Summary      Invite a player to a match
// @Description  Creates a shareable invitation code for an open match.
// @Tags         Social
// @Accept       json
// @Produce      json
// @Param        invite body InviteInput true "Match and invitee"
// @Success      201 {object} utils.SuccessResponse
// @Router       /invitations [post]
// @Security     Bearer
func (sc *SocialController) InviteToMatch(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	var input InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, err.Error())
		return
	}

	invitation, err := sc.repo.CreateInvitation(input.MatchID, userID, input.InviteeID)
	if err != nil {
		sendSocialError(c, err)
		return
	}

	sc.notifier.Dispatch(input.InviteeID, notification.TypeMatchInvite, notification.Payload{
		"match_id": input.MatchID,
		"code":     invitation.Code,
	})

	utils.SuccessJSON(c, http.StatusCreated, "Invitation sent", invitation)
}

// @Summary      List my pending invitations
// @Tags         Social
// @Produce      json
// @Success      200 {object} utils.SuccessResponse
// @Router       /invitations [get]
// @Security     Bearer
func (sc *SocialController) GetMyInvitations(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	invitations, err := sc.repo.GetMyInvitations(userID)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, "Invitations retrieved", invitations)
}

// @Summary      Respond to a match invitation
// @Description  Accepting does not claim a slot; join the match afterwards to pick a team and position.
// @Tags         Social
// @Accept       json
// @Produce      json
// @Param        code path string true "Invitation code"
// @Param        response body RespondInput true "Accept or decline"
// @Success      200 {object} utils.SuccessResponse
// @Router       /invitations/{code}/respond [post]
// @Security     Bearer
func (sc *SocialController) RespondToInvitation(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, err.Error())
		return
	}

	invitation, err := sc.repo.RespondToInvitation(c.Param("code"), userID, input.Accept)
	if err != nil {
		sendSocialError(c, err)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, "Invitation "+string(invitation.Status), invitation)
}
