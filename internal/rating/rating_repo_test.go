package rating

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunislock/tunislock-api/internal/match"
	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/internal/venue"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the rating schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// One connection so every session sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&user.User{}, &user.Role{}, &user.SkillProfile{},
		&venue.Venue{}, &match.Match{}, &match.Participant{},
		&PlayerRating{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{
		Name:     username,
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// createCompletedMatch sets up a completed match whose roster holds the given users.
func createCompletedMatch(t *testing.T, db *gorm.DB, creatorID uint, participants ...*user.User) *match.Match {
	t.Helper()
	m := &match.Match{
		CreatorID:     creatorID,
		Location:      "El Menzah",
		ScheduledAt:   time.Now().Add(-time.Hour),
		PlayersNeeded: 10,
		PartyName:     fmt.Sprintf("completed-%d-%d", creatorID, time.Now().UnixNano()),
		PartyNameKey:  fmt.Sprintf("completed-%d-%d", creatorID, time.Now().UnixNano()),
		Status:        match.StatusMatchCompleted,
	}
	require.NoError(t, db.Create(m).Error)

	positions := []match.Position{match.PositionGoalkeeper, match.PositionDefender, match.PositionMidfielder, match.PositionForward}
	for i, u := range participants {
		team := match.TeamA
		if i%2 == 1 {
			team = match.TeamB
		}
		p := &match.Participant{
			MatchID:  m.ID,
			UserID:   u.ID,
			Team:     team,
			Position: positions[i%len(positions)],
		}
		require.NoError(t, db.Create(p).Error)
	}
	return m
}

func gradePtr(g Grade) *Grade {
	return &g
}

func TestSubmitRating(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRatingRepository(db)

	rater := createTestUser(t, db, "rater")
	rated := createTestUser(t, db, "rated")
	outsider := createTestUser(t, db, "outsider")
	m := createCompletedMatch(t, db, rater.ID, rater, rated)

	t.Run("valid rating accepted", func(t *testing.T) {
		err := repo.SubmitRating(&PlayerRating{
			MatchID:     m.ID,
			RaterID:     rater.ID,
			RatedUserID: rated.ID,
			Speed:       gradePtr(GradeA),
			Passing:     gradePtr(GradeS),
			Suggestion:  "Shoot earlier",
		})
		require.NoError(t, err)
	})

	t.Run("duplicate rating rejected", func(t *testing.T) {
		err := repo.SubmitRating(&PlayerRating{
			MatchID:     m.ID,
			RaterID:     rater.ID,
			RatedUserID: rated.ID,
			Speed:       gradePtr(GradeB),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("self rating rejected", func(t *testing.T) {
		err := repo.SubmitRating(&PlayerRating{
			MatchID:     m.ID,
			RaterID:     rater.ID,
			RatedUserID: rater.ID,
			Speed:       gradePtr(GradeA),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("empty rating rejected", func(t *testing.T) {
		err := repo.SubmitRating(&PlayerRating{
			MatchID:     m.ID,
			RaterID:     rated.ID,
			RatedUserID: rater.ID,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("non-participant cannot rate or be rated", func(t *testing.T) {
		err := repo.SubmitRating(&PlayerRating{
			MatchID:     m.ID,
			RaterID:     outsider.ID,
			RatedUserID: rated.ID,
			Speed:       gradePtr(GradeA),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

		err = repo.SubmitRating(&PlayerRating{
			MatchID:     m.ID,
			RaterID:     rater.ID,
			RatedUserID: outsider.ID,
			Speed:       gradePtr(GradeA),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
	})

	t.Run("rating an open match rejected", func(t *testing.T) {
		open := &match.Match{
			CreatorID:     rater.ID,
			Location:      "La Marsa",
			ScheduledAt:   time.Now().Add(time.Hour),
			PlayersNeeded: 10,
			PartyName:     "still open",
			PartyNameKey:  "still open",
			Status:        match.StatusMatchOpen,
		}
		require.NoError(t, db.Create(open).Error)

		err := repo.SubmitRating(&PlayerRating{
			MatchID:     open.ID,
			RaterID:     rater.ID,
			RatedUserID: rated.ID,
			Speed:       gradePtr(GradeA),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	})

	t.Run("rating a missing match rejected", func(t *testing.T) {
		err := repo.SubmitRating(&PlayerRating{
			MatchID:     99999,
			RaterID:     rater.ID,
			RatedUserID: rated.ID,
			Speed:       gradePtr(GradeA),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestGetPlayersToRate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRatingRepository(db)

	rater := createTestUser(t, db, "rater")
	p1 := createTestUser(t, db, "teammate")
	p2 := createTestUser(t, db, "opponent")
	m := createCompletedMatch(t, db, rater.ID, rater, p1, p2)

	players, err := repo.GetPlayersToRate(m.ID, rater.ID)
	require.NoError(t, err)
	assert.Len(t, players, 2)

	// Rating one player removes them from the pending list.
	require.NoError(t, repo.SubmitRating(&PlayerRating{
		MatchID:     m.ID,
		RaterID:     rater.ID,
		RatedUserID: p1.ID,
		Defense:     gradePtr(GradeB),
	}))

	players, err = repo.GetPlayersToRate(m.ID, rater.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, p2.ID, players[0].ID)

	// A non-participant gets an authorization error, not an empty list.
	outsider := createTestUser(t, db, "outsider")
	_, err = repo.GetPlayersToRate(m.ID, outsider.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}
