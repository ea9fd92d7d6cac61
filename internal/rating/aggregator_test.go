package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunislock/tunislock-api/internal/user"
	"gorm.io/gorm"
)

func loadProfile(t *testing.T, db *gorm.DB, userID uint) *user.SkillProfile {
	t.Helper()
	var profile user.SkillProfile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	return &profile
}

func TestGradeScores(t *testing.T) {
	for grade, want := range map[Grade]int{GradeS: 95, GradeA: 85, GradeB: 75, GradeC: 65, GradeD: 55} {
		got, ok := grade.Score()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := Grade("X").Score()
	assert.False(t, ok)
}

func TestRecompute(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRatingRepository(db)
	agg := NewAggregator(db, repo, 8)

	rated := createTestUser(t, db, "rated")
	r1 := createTestUser(t, db, "rater1")
	r2 := createTestUser(t, db, "rater2")
	m := createCompletedMatch(t, db, r1.ID, rated, r1, r2)

	require.NoError(t, repo.SubmitRating(&PlayerRating{
		MatchID:     m.ID,
		RaterID:     r1.ID,
		RatedUserID: rated.ID,
		Speed:       gradePtr(GradeS), // 95
		Passing:     gradePtr(GradeB), // 75
	}))
	require.NoError(t, repo.SubmitRating(&PlayerRating{
		MatchID:     m.ID,
		RaterID:     r2.ID,
		RatedUserID: rated.ID,
		Speed:       gradePtr(GradeA), // 85
	}))

	require.NoError(t, agg.Recompute(rated.ID))
	profile := loadProfile(t, db, rated.ID)

	// speed = round((95+85)/2) = 90, passing = 75 from its single grade.
	require.NotNil(t, profile.Speed)
	assert.Equal(t, 90, *profile.Speed)
	require.NotNil(t, profile.Passing)
	assert.Equal(t, 75, *profile.Passing)

	// Ungraded attributes stay unset, not zero.
	assert.Nil(t, profile.Defense)
	assert.Nil(t, profile.Offense)
	assert.Nil(t, profile.Shooting)
	assert.Nil(t, profile.Dribbling)

	// Overall averages only the attributes with data: round((90+75)/2) = 83.
	require.NotNil(t, profile.OverallScore)
	assert.Equal(t, 83, *profile.OverallScore)

	assert.Equal(t, 2, profile.RatingsCount)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRatingRepository(db)
	agg := NewAggregator(db, repo, 8)

	rated := createTestUser(t, db, "rated")
	rater := createTestUser(t, db, "rater")
	m := createCompletedMatch(t, db, rater.ID, rated, rater)

	require.NoError(t, repo.SubmitRating(&PlayerRating{
		MatchID:     m.ID,
		RaterID:     rater.ID,
		RatedUserID: rated.ID,
		Shooting:    gradePtr(GradeC),
	}))

	require.NoError(t, agg.Recompute(rated.ID))
	first := loadProfile(t, db, rated.ID)

	require.NoError(t, agg.Recompute(rated.ID))
	second := loadProfile(t, db, rated.ID)

	assert.Equal(t, first.Shooting, second.Shooting)
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.RatingsCount, second.RatingsCount)

	// Still exactly one profile row.
	var count int64
	require.NoError(t, db.Model(&user.SkillProfile{}).Where("user_id = ?", rated.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecomputeWithNoRatings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRatingRepository(db)
	agg := NewAggregator(db, repo, 8)

	u := createTestUser(t, db, "unrated")

	require.NoError(t, agg.Recompute(u.ID))
	profile := loadProfile(t, db, u.ID)

	assert.Nil(t, profile.OverallScore)
	assert.Equal(t, 0, profile.RatingsCount)
}

func TestAggregatorWorker(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRatingRepository(db)
	agg := NewAggregator(db, repo, 8)
	agg.Start()

	rated := createTestUser(t, db, "rated")
	rater := createTestUser(t, db, "rater")
	m := createCompletedMatch(t, db, rater.ID, rated, rater)

	require.NoError(t, repo.SubmitRating(&PlayerRating{
		MatchID:     m.ID,
		RaterID:     rater.ID,
		RatedUserID: rated.ID,
		Dribbling:   gradePtr(GradeA),
	}))

	agg.Schedule(rated.ID)
	agg.Stop() // drains the queue before returning

	profile := loadProfile(t, db, rated.ID)
	require.NotNil(t, profile.Dribbling)
	assert.Equal(t, 85, *profile.Dribbling)
}

func TestScheduleDropsWhenQueueFull(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRatingRepository(db)

	// Tiny queue, no worker running: the second schedule must not block.
	agg := NewAggregator(db, repo, 1)

	done := make(chan struct{})
	go func() {
		agg.Schedule(1)
		agg.Schedule(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Schedule blocked on a full queue")
	}
}
