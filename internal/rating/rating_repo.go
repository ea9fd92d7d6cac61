package rating

import (
	"github.com/tunislock/tunislock-api/internal/match"
	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"gorm.io/gorm"
)

// RatingRepository defines database operations for player ratings.
type RatingRepository interface {
	SubmitRating(rating *PlayerRating) error
	GetPlayersToRate(matchID, raterID uint) ([]user.PublicUser, error)
	GetRatingsForUser(ratedUserID uint) ([]PlayerRating, error)
	GetSuggestionsForUser(ratedUserID uint, page, pageSize int) ([]PlayerRating, int64, error)
}

type GormRatingRepository struct {
	db *gorm.DB
}

func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// SubmitRating stores one rating after enforcing the eligibility rules:
// the match must be completed, rater and rated user must both have been on
// the roster, self-rating is rejected, and a rater gets exactly one rating
// per rated player per match.
func (r *GormRatingRepository) SubmitRating(rating *PlayerRating) error {
	if rating.RaterID == rating.RatedUserID {
		return apperrors.Validation("you cannot rate yourself")
	}
	if !rating.HasContent() {
		return apperrors.Validation("a rating needs at least one grade or a suggestion")
	}
	for name, g := range rating.Grades() {
		if !g.Valid() {
			return apperrors.Validation("invalid grade for " + name)
		}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var m match.Match
		if err := tx.First(&m, rating.MatchID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("match not found")
			}
			return apperrors.Internal("failed to fetch match", err)
		}
		if m.Status != match.StatusMatchCompleted {
			return apperrors.InvalidState("ratings are only accepted for completed matches")
		}

		var participantCount int64
		if err := tx.Model(&match.Participant{}).
			Where("match_id = ? AND user_id IN ?", rating.MatchID, []uint{rating.RaterID, rating.RatedUserID}).
			Count(&participantCount).Error; err != nil {
			return apperrors.Internal("failed to check participants", err)
		}
		if participantCount != 2 {
			return apperrors.Authorization("both players must have participated in the match")
		}

		var existing int64
		if err := tx.Model(&PlayerRating{}).
			Where("match_id = ? AND rater_id = ? AND rated_user_id = ?",
				rating.MatchID, rating.RaterID, rating.RatedUserID).
			Count(&existing).Error; err != nil {
			return apperrors.Internal("failed to check existing rating", err)
		}
		if existing > 0 {
			return apperrors.Conflict("you have already rated this player for this match")
		}

		if err := tx.Create(rating).Error; err != nil {
			return apperrors.Internal("failed to save rating", err)
		}
		return nil
	})
}

// GetPlayersToRate lists the fellow participants of a completed match the
// rater has not rated yet.
func (r *GormRatingRepository) GetPlayersToRate(matchID, raterID uint) ([]user.PublicUser, error) {
	var m match.Match
	if err := r.db.First(&m, matchID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("match not found")
		}
		return nil, apperrors.Internal("failed to fetch match", err)
	}
	if m.Status != match.StatusMatchCompleted {
		return nil, apperrors.InvalidState("ratings are only accepted for completed matches")
	}

	var raterCount int64
	if err := r.db.Model(&match.Participant{}).
		Where("match_id = ? AND user_id = ?", matchID, raterID).
		Count(&raterCount).Error; err != nil {
		return nil, apperrors.Internal("failed to check participation", err)
	}
	if raterCount == 0 {
		return nil, apperrors.Authorization("only match participants can rate")
	}

	var users []user.User
	err := r.db.Model(&user.User{}).
		Joins("JOIN participants ON participants.user_id = users.id AND participants.deleted_at IS NULL").
		Where("participants.match_id = ? AND users.id != ?", matchID, raterID).
		Where("users.id NOT IN (?)",
			r.db.Model(&PlayerRating{}).
				Select("rated_user_id").
				Where("match_id = ? AND rater_id = ?", matchID, raterID)).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch players to rate", err)
	}

	out := make([]user.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// GetRatingsForUser returns every rating a user has received, across all
// matches. The aggregator recomputes the skill profile from this full set.
func (r *GormRatingRepository) GetRatingsForUser(ratedUserID uint) ([]PlayerRating, error) {
	var ratings []PlayerRating
	if err := r.db.Where("rated_user_id = ?", ratedUserID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetSuggestionsForUser returns the non-empty free-text suggestions a user
// has received, newest first.
func (r *GormRatingRepository) GetSuggestionsForUser(ratedUserID uint, page, pageSize int) ([]PlayerRating, int64, error) {
	query := r.db.Model(&PlayerRating{}).
		Where("rated_user_id = ? AND suggestion != ''", ratedUserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []PlayerRating
	offset := (page - 1) * pageSize
	if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&ratings).Error; err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}
