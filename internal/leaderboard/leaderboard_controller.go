package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/pkg/responses"
	"gorm.io/gorm"
)

// MinRatingsForRanking is the number of received ratings a player needs
// before their overall score counts for the leaderboard.
const MinRatingsForRanking = 3

// Entry is one leaderboard row.
type Entry struct {
	Rank         int             `json:"rank"`
	User         user.PublicUser `json:"user"`
	OverallScore int             `json:"overall_score"`
	RatingsCount int             `json:"ratings_count"`
}

type LeaderboardController struct {
	db *gorm.DB
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{db: db}
}

// @Summary      Player leaderboard
// @Description  Players ranked by overall skill score. Only players with at least three received ratings are ranked.
// @Tags         Leaderboard
// @Produce      json
// @Param        country query string false "Filter by country"
// @Param        position query string false "Filter by preferred position"
// @Param        limit query int false "Number of entries (default: 20, max: 100)"
// @Success      200 {object} responses.SuccessResponse
// @Router       /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := lc.db.Model(&user.SkillProfile{}).
		Preload("User").
		Where("ratings_count >= ? AND overall_score IS NOT NULL", MinRatingsForRanking)

	if country := c.Query("country"); country != "" {
		query = query.Joins("JOIN users ON users.id = skill_profiles.user_id AND users.deleted_at IS NULL").
			Where("users.country = ?", country)
	}
	if position := c.Query("position"); position != "" {
		query = query.Joins("JOIN users u2 ON u2.id = skill_profiles.user_id AND u2.deleted_at IS NULL").
			Where("u2.preferred_position = ?", position)
	}

	var profiles []user.SkillProfile
	if err := query.Order("overall_score desc, ratings_count desc").Limit(limit).Find(&profiles).Error; err != nil {
		responses.InternalServerError(c, "Failed to fetch leaderboard")
		return
	}

	entries := make([]Entry, 0, len(profiles))
	for i := range profiles {
		entries = append(entries, Entry{
			Rank:         i + 1,
			User:         profiles[i].User.Public(),
			OverallScore: *profiles[i].OverallScore,
			RatingsCount: profiles[i].RatingsCount,
		})
	}

	responses.SendSuccess(c, http.StatusOK, "Leaderboard retrieved", entries)
}
