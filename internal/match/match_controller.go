package match

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tunislock/tunislock-api/internal/common"
	"github.com/tunislock/tunislock-api/internal/notification"
	responses "github.com/tunislock/tunislock-api/pkg/matchresponse"
)

// MatchController handles match lifecycle and roster HTTP requests.
type MatchController struct {
	repo     MatchRepository
	notifier notification.Dispatcher
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository, notifier notification.Dispatcher) *MatchController {
	return &MatchController{
		repo:     repo,
		notifier: notifier,
	}
}

// --- DTOs for requests ---

// CreateMatchRequest defines the request payload for creating a match
type CreateMatchRequest struct {
	Location          string    `json:"location" binding:"required,min=3,max=200"`
	DateTime          time.Time `json:"date_time" binding:"required"`
	PlayersNeeded     int       `json:"players_needed" binding:"required"`
	Description       string    `json:"description,omitempty" binding:"max=2000"`
	LocationAvailable bool      `json:"location_available"`
	PartyName         *string   `json:"party_name,omitempty" binding:"omitempty,min=3,max=100"`
	VenueID           *uint     `json:"venue_id,omitempty"`
}

// JoinMatchRequest defines the team/position slot the caller wants to claim
type JoinMatchRequest struct {
	Team     TeamSide `json:"team" binding:"required,oneof=A B"`
	Position Position `json:"position" binding:"required,oneof=goalkeeper defender midfielder forward"`
}

// --- Response shapes ---

// ParticipantView is a roster entry enriched with the display user.
type ParticipantView struct {
	ID       uint     `json:"id"`
	UserID   uint     `json:"user_id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Team     TeamSide `json:"team"`
	Position Position `json:"position"`
}

// MatchDetails is the match plus its resolved roster.
type MatchDetails struct {
	Match            *Match            `json:"match"`
	Participants     []ParticipantView `json:"participants"`
	ParticipantCount int               `json:"participant_count"`
}

func participantViews(participants []Participant) []ParticipantView {
	views := make([]ParticipantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, ParticipantView{
			ID:       p.ID,
			UserID:   p.UserID,
			Name:     p.User.Name,
			Username: p.User.Username,
			Team:     p.Team,
			Position: p.Position,
		})
	}
	return views
}

// --- Handlers ---

// @Summary      Create a match
// @Description  Create a new football match. Player count must be even, between 6 and 22; the scheduled time must be in the future; the party name (default "Football at {location}") must be unique.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Param        match body CreateMatchRequest true "Match details"
// @Success      201 {object} Match
// @Failure      400 {object} map[string]string "Validation error"
// @Failure      409 {object} map[string]string "Party name already taken"
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m := Match{
		CreatorID:         userID,
		Location:          req.Location,
		ScheduledAt:       req.DateTime,
		PlayersNeeded:     req.PlayersNeeded,
		Description:       req.Description,
		LocationConfirmed: req.LocationAvailable,
		VenueID:           req.VenueID,
	}
	if req.PartyName != nil {
		m.PartyName = *req.PartyName
	}

	if err := mc.repo.CreateMatch(&m); err != nil {
		responses.AppErrorResponse(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Match created successfully",
		"match":   m,
	})
}

// @Summary      List open matches
// @Tags         Matches
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /matches [get]
func (mc *MatchController) GetOpenMatches(c *gin.Context) {
	page, pageSize := parsePagination(c)

	matches, total, err := mc.repo.GetOpenMatches(page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch matches: "+err.Error())
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// @Summary      Get match details
// @Description  Returns the match with its resolved roster, or null data when the match does not exist (callers branch on null).
// @Tags         Matches
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} MatchDetails
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatchDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	m, err := mc.repo.GetMatchByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch match: "+err.Error())
		return
	}

	// Absence is data here, not an error.
	if m == nil {
		responses.SuccessResponse(c, http.StatusOK, nil)
		return
	}

	details := MatchDetails{
		Match:            m,
		Participants:     participantViews(m.Participants),
		ParticipantCount: len(m.Participants),
	}
	responses.SuccessResponse(c, http.StatusOK, details)
}

// @Summary      List my created matches
// @Tags         Matches
// @Produce      json
// @Router       /matches/created [get]
func (mc *MatchController) GetMyCreatedMatches(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, pageSize := parsePagination(c)
	matches, total, err := mc.repo.GetCreatedMatches(userID, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch matches: "+err.Error())
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// @Summary      List matches I joined
// @Tags         Matches
// @Produce      json
// @Router       /matches/joined [get]
func (mc *MatchController) GetMyJoinedMatches(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, pageSize := parsePagination(c)
	matches, total, err := mc.repo.GetJoinedMatches(userID, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch matches: "+err.Error())
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// @Summary      Join a match
// @Description  Claim a team/position slot. Capacity ceilings are derived from the match's player count; a full team, a taken goalkeeper slot, or an exhausted field position all reject the join.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        slot body JoinMatchRequest true "Team and position"
// @Success      201 {object} Participant
// @Failure      409 {object} map[string]string "Slot or capacity conflict"
// @Failure      422 {object} map[string]string "Match not open"
// @Router       /matches/{id}/join [post]
func (mc *MatchController) JoinMatch(c *gin.Context) {
	mc.handleJoin(c, false)
}

// @Summary      Join my own match
// @Description  Creator-only variant of join with identical slot rules.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        slot body JoinMatchRequest true "Team and position"
// @Success      201 {object} Participant
// @Router       /matches/{id}/creator-join [post]
func (mc *MatchController) CreatorJoinMatch(c *gin.Context) {
	mc.handleJoin(c, true)
}

func (mc *MatchController) handleJoin(c *gin.Context, creatorOnly bool) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req JoinMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if creatorOnly {
		m, err := mc.repo.GetMatchByID(uint(id))
		if err != nil {
			responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch match: "+err.Error())
			return
		}
		if m == nil {
			responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
			return
		}
		if m.CreatorID != userID {
			responses.ErrorResponse(c, http.StatusForbidden, "Only the match creator may use creator join")
			return
		}
	}

	p, err := mc.repo.JoinMatch(uint(id), userID, req.Team, req.Position)
	if err != nil {
		responses.AppErrorResponse(c, err)
		return
	}

	// Best-effort side channel; never fails the join.
	if m, err := mc.repo.GetMatchByID(uint(id)); err == nil && m != nil {
		if m.CreatorID != userID {
			mc.notifier.Dispatch(m.CreatorID, notification.TypeMatchJoined, notification.Payload{
				"match_id": m.ID,
				"user_id":  userID,
				"team":     req.Team,
				"position": req.Position,
			})
		}
		if m.Status == StatusMatchFull {
			for _, participant := range m.Participants {
				mc.notifier.Dispatch(participant.UserID, notification.TypeMatchFull, notification.Payload{
					"match_id": m.ID,
				})
			}
		}
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message":     "Joined match successfully",
		"participant": p,
	})
}

// @Summary      Leave a match
// @Description  Remove my participant row. Leaving a full match reopens it.
// @Tags         Matches
// @Produce      json
// @Param        id path int true "Match ID"
// @Router       /matches/{id}/leave [post]
func (mc *MatchController) LeaveMatch(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	m, err := mc.repo.LeaveMatch(uint(id), userID)
	if err != nil {
		responses.AppErrorResponse(c, err)
		return
	}

	if m.CreatorID != userID {
		mc.notifier.Dispatch(m.CreatorID, notification.TypeMatchLeft, notification.Payload{
			"match_id": m.ID,
			"user_id":  userID,
		})
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Left match successfully",
	})
}

// @Summary      Cancel a match
// @Description  Creator only. Cancelled is terminal; a second cancel fails.
// @Tags         Matches
// @Produce      json
// @Param        id path int true "Match ID"
// @Router       /matches/{id}/cancel [post]
func (mc *MatchController) CancelMatch(c *gin.Context) {
	mc.handleTerminal(c, StatusMatchCancelled)
}

// @Summary      Complete a match
// @Description  Creator only. Completed matches become ratable.
// @Tags         Matches
// @Produce      json
// @Param        id path int true "Match ID"
// @Router       /matches/{id}/complete [post]
func (mc *MatchController) CompleteMatch(c *gin.Context) {
	mc.handleTerminal(c, StatusMatchCompleted)
}

func (mc *MatchController) handleTerminal(c *gin.Context, status MatchStatus) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var m *Match
	var notifType string
	if status == StatusMatchCancelled {
		m, err = mc.repo.CancelMatch(uint(id), userID)
		notifType = notification.TypeMatchCancelled
	} else {
		m, err = mc.repo.CompleteMatch(uint(id), userID)
		notifType = notification.TypeMatchCompleted
	}
	if err != nil {
		responses.AppErrorResponse(c, err)
		return
	}

	if participants, err := mc.repo.GetParticipants(m.ID); err == nil {
		for _, p := range participants {
			if p.UserID == userID {
				continue
			}
			mc.notifier.Dispatch(p.UserID, notifType, notification.Payload{
				"match_id": m.ID,
			})
		}
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match " + string(status),
		"match":   m,
	})
}

// @Summary      Expire stale matches
// @Description  Admin only. Cancels open or full matches whose scheduled time has passed.
// @Tags         Admin
// @Produce      json
// @Router       /admin/matches/expire [post]
func (mc *MatchController) ExpireStaleMatches(c *gin.Context) {
	expired, err := mc.repo.ExpireStaleMatches()
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to expire matches: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Stale matches expired",
		"expired": expired,
	})
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
