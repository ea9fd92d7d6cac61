package rating

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunislock/tunislock-api/internal/common"
	"github.com/tunislock/tunislock-api/internal/notification"
	"github.com/tunislock/tunislock-api/pkg/responses"
)

// RatingController handles player rating HTTP requests.
type RatingController struct {
	repo       RatingRepository
	aggregator *Aggregator
	notifier   notification.Dispatcher
}

func NewRatingController(repo RatingRepository, aggregator *Aggregator, notifier notification.Dispatcher) *RatingController {
	return &RatingController{
		repo:       repo,
		aggregator: aggregator,
		notifier:   notifier,
	}
}

// SubmitRatingRequest carries the grades for one rated player. Every grade is
// optional, but the request must carry at least one grade or a suggestion.
type SubmitRatingRequest struct {
	RatedUserID uint   `json:"rated_user_id" binding:"required"`
	Speed       *Grade `json:"speed" binding:"omitempty,oneof=S A B C D"`
	Defense     *Grade `json:"defense" binding:"omitempty,oneof=S A B C D"`
	Offense     *Grade `json:"offense" binding:"omitempty,oneof=S A B C D"`
	Shooting    *Grade `json:"shooting" binding:"omitempty,oneof=S A B C D"`
	Dribbling   *Grade `json:"dribbling" binding:"omitempty,oneof=S A B C D"`
	Passing     *Grade `json:"passing" binding:"omitempty,oneof=S A B C D"`
	Suggestion  string `json:"suggestion" binding:"max=500"`
}

// @Summary      Rate a player
// @Description  Submit grades for a fellow participant of a completed match. One rating per rater per rated player per match.
// @Tags         Ratings
// @Accept       json
// @Produce      json
// @Param        id path int true "Match ID"
// @Param        rating body SubmitRatingRequest true "Grades"
// @Success      201 {object} responses.SuccessResponse
// @Failure      409 {object} responses.ErrorResponse "Already rated"
// @Failure      422 {object} responses.ErrorResponse "Match not completed"
// @Router       /matches/{id}/ratings [post]
// @Security     Bearer
func (rc *RatingController) SubmitRating(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	matchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	rating := &PlayerRating{
		MatchID:     uint(matchID),
		RaterID:     userID,
		RatedUserID: req.RatedUserID,
		Speed:       req.Speed,
		Defense:     req.Defense,
		Offense:     req.Offense,
		Shooting:    req.Shooting,
		Dribbling:   req.Dribbling,
		Passing:     req.Passing,
		Suggestion:  req.Suggestion,
	}

	if err := rc.repo.SubmitRating(rating); err != nil {
		responses.SendAppError(c, err)
		return
	}

	rc.aggregator.Schedule(req.RatedUserID)
	rc.notifier.Dispatch(req.RatedUserID, notification.TypeRatingReceived, notification.Payload{
		"match_id": rating.MatchID,
	})

	responses.SendSuccess(c, http.StatusCreated, "Rating submitted successfully", rating)
}

// @Summary      Players left to rate
// @Description  Lists the fellow participants of a completed match the caller has not rated yet.
// @Tags         Ratings
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /matches/{id}/ratings/pending [get]
// @Security     Bearer
func (rc *RatingController) GetPlayersToRate(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	matchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	players, err := rc.repo.GetPlayersToRate(uint(matchID), userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Players to rate retrieved", players)
}

// @Summary      My received suggestions
// @Description  Free-text improvement suggestions the caller has received, newest first. Rater identities are not exposed.
// @Tags         Ratings
// @Produce      json
// @Success      200 {object} responses.PaginatedResponse
// @Router       /users/me/suggestions [get]
// @Security     Bearer
func (rc *RatingController) GetMySuggestions(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	ratings, total, err := rc.repo.GetSuggestionsForUser(userID, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch suggestions")
		return
	}

	// Suggestions stay anonymous; only the text and match leak through.
	type suggestionView struct {
		MatchID    uint   `json:"match_id"`
		Suggestion string `json:"suggestion"`
	}
	views := make([]suggestionView, 0, len(ratings))
	for i := range ratings {
		views = append(views, suggestionView{
			MatchID:    ratings[i].MatchID,
			Suggestion: ratings[i].Suggestion,
		})
	}

	responses.SendPaginated(c, http.StatusOK, "Suggestions retrieved", views, total, page, pageSize)
}
