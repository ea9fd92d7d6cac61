package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunislock/tunislock-api/internal/common"
	"github.com/tunislock/tunislock-api/pkg/responses"
)

type UserController struct {
	repo UserRepository
}

func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

// UpdateProfileRequest is a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name              *string `json:"name,omitempty"`
	Bio               *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	Country           *string `json:"country,omitempty"`
	City              *string `json:"city,omitempty"`
	Avatar            *string `json:"avatar,omitempty"`
	PreferredPosition *string `json:"preferred_position,omitempty" binding:"omitempty,oneof=goalkeeper defender midfielder forward"`
}

// @Summary      Get my profile
// @Tags         Users
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /users/me [get]
// @Security     Bearer
func (uc *UserController) GetMyProfile(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	u, err := uc.repo.GetByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch profile")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	profile, err := uc.repo.GetSkillProfile(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch skill profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved", gin.H{
		"user":          u,
		"skill_profile": profile,
	})
}

// @Summary      Update my profile
// @Description  Partial update; omitted fields keep their current value.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        profile body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Router       /users/me [put]
// @Security     Bearer
func (uc *UserController) UpdateMyProfile(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	u, err := uc.repo.GetByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch profile")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Country != nil {
		u.Country = *req.Country
	}
	if req.City != nil {
		u.City = *req.City
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}
	if req.PreferredPosition != nil {
		u.PreferredPosition = *req.PreferredPosition
	}

	if err := uc.repo.Update(u); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", u)
}

// @Summary      Get a public profile
// @Description  Public view of a user: identity plus the aggregated skill profile.
// @Tags         Users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /users/{id} [get]
func (uc *UserController) GetPublicProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	u, err := uc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	profile, err := uc.repo.GetSkillProfile(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch skill profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved", gin.H{
		"user":          u.Public(),
		"skill_profile": profile,
	})
}
