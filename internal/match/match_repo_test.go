package match

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/internal/venue"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the match schema.
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

	err = db.AutoMigrate(&user.User{}, &user.Role{}, &venue.Venue{}, &Match{}, &Participant{})
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

func createOpenMatch(t *testing.T, repo *GormMatchRepository, creatorID uint, playersNeeded int) *Match {
	t.Helper()
	m := &Match{
		CreatorID:     creatorID,
		Location:      "El Menzah",
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		PlayersNeeded: playersNeeded,
		PartyName:     fmt.Sprintf("party-%d-%d", creatorID, time.Now().UnixNano()),
	}
	require.NoError(t, repo.CreateMatch(m))
	return m
}

func TestCreateMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")

	t.Run("valid match starts open", func(t *testing.T) {
		m := &Match{
			CreatorID:     creator.ID,
			Location:      "La Marsa",
			ScheduledAt:   time.Now().Add(2 * time.Hour),
			PlayersNeeded: 10,
			PartyName:     "Sunday Kickabout",
		}
		require.NoError(t, repo.CreateMatch(m))
		assert.Equal(t, StatusMatchOpen, m.Status)
		assert.NotZero(t, m.ID)
	})

	t.Run("odd player count rejected", func(t *testing.T) {
		m := &Match{
			CreatorID:     creator.ID,
			Location:      "La Marsa",
			ScheduledAt:   time.Now().Add(2 * time.Hour),
			PlayersNeeded: 9,
		}
		err := repo.CreateMatch(m)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("player count out of range rejected", func(t *testing.T) {
		for _, n := range []int{4, 24} {
			m := &Match{
				CreatorID:     creator.ID,
				Location:      "La Marsa",
				ScheduledAt:   time.Now().Add(2 * time.Hour),
				PlayersNeeded: n,
			}
			err := repo.CreateMatch(m)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		}
	})

	t.Run("past scheduled time rejected", func(t *testing.T) {
		m := &Match{
			CreatorID:     creator.ID,
			Location:      "La Marsa",
			ScheduledAt:   time.Now().Add(-time.Hour),
			PlayersNeeded: 10,
		}
		err := repo.CreateMatch(m)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("empty party name gets the location default", func(t *testing.T) {
		m := &Match{
			CreatorID:     creator.ID,
			Location:      "Carthage",
			ScheduledAt:   time.Now().Add(2 * time.Hour),
			PlayersNeeded: 8,
		}
		require.NoError(t, repo.CreateMatch(m))
		assert.Equal(t, "Football at Carthage", m.PartyName)
	})

	t.Run("party name uniqueness is case-insensitive", func(t *testing.T) {
		first := &Match{
			CreatorID:     creator.ID,
			Location:      "Sousse",
			ScheduledAt:   time.Now().Add(2 * time.Hour),
			PlayersNeeded: 10,
			PartyName:     "Derby Night",
		}
		require.NoError(t, repo.CreateMatch(first))

		dup := &Match{
			CreatorID:     creator.ID,
			Location:      "Sousse",
			ScheduledAt:   time.Now().Add(3 * time.Hour),
			PlayersNeeded: 10,
			PartyName:     "DERBY NIGHT",
		}
		err := repo.CreateMatch(dup)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestGetMatchByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")

	m := createOpenMatch(t, repo, creator.ID, 10)

	found, err := repo.GetMatchByID(m.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, m.ID, found.ID)
	assert.Equal(t, creator.Username, found.Creator.Username)

	// Absent match is nil, nil; not an error.
	missing, err := repo.GetMatchByID(99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestJoinMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")

	t.Run("join claims a slot", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)
		u := createTestUser(t, db, "joiner1")

		p, err := repo.JoinMatch(m.ID, u.ID, TeamA, PositionForward)
		require.NoError(t, err)
		assert.Equal(t, TeamA, p.Team)
		assert.Equal(t, PositionForward, p.Position)
	})

	t.Run("double join rejected", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)
		u := createTestUser(t, db, "joiner2")

		_, err := repo.JoinMatch(m.ID, u.ID, TeamA, PositionForward)
		require.NoError(t, err)

		_, err = repo.JoinMatch(m.ID, u.ID, TeamB, PositionDefender)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("one goalkeeper per team", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)
		gk1 := createTestUser(t, db, "gk1")
		gk2 := createTestUser(t, db, "gk2")
		gk3 := createTestUser(t, db, "gk3")

		_, err := repo.JoinMatch(m.ID, gk1.ID, TeamA, PositionGoalkeeper)
		require.NoError(t, err)

		_, err = repo.JoinMatch(m.ID, gk2.ID, TeamA, PositionGoalkeeper)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindCapacity, apperrors.KindOf(err))

		// The other team's goalkeeper slot is independent.
		_, err = repo.JoinMatch(m.ID, gk3.ID, TeamB, PositionGoalkeeper)
		require.NoError(t, err)
	})

	t.Run("field position ceiling enforced per team", func(t *testing.T) {
		// 10 players: 2 slots per field position per team.
		m := createOpenMatch(t, repo, creator.ID, 10)
		u1 := createTestUser(t, db, "fwd1")
		u2 := createTestUser(t, db, "fwd2")
		u3 := createTestUser(t, db, "fwd3")
		u4 := createTestUser(t, db, "fwd4")

		_, err := repo.JoinMatch(m.ID, u1.ID, TeamA, PositionForward)
		require.NoError(t, err)
		_, err = repo.JoinMatch(m.ID, u2.ID, TeamA, PositionForward)
		require.NoError(t, err)

		_, err = repo.JoinMatch(m.ID, u3.ID, TeamA, PositionForward)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindCapacity, apperrors.KindOf(err))

		// Same position on the other team still has room.
		_, err = repo.JoinMatch(m.ID, u4.ID, TeamB, PositionForward)
		require.NoError(t, err)
	})

	t.Run("last join flips the match to full", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 6)

		slots := []struct {
			team TeamSide
			pos  Position
		}{
			{TeamA, PositionGoalkeeper}, {TeamA, PositionDefender}, {TeamA, PositionMidfielder},
			{TeamB, PositionGoalkeeper}, {TeamB, PositionDefender}, {TeamB, PositionMidfielder},
		}
		for i, slot := range slots {
			u := createTestUser(t, db, fmt.Sprintf("full-joiner-%d", i))
			_, err := repo.JoinMatch(m.ID, u.ID, slot.team, slot.pos)
			require.NoError(t, err)
		}

		updated, err := repo.GetMatchByID(m.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusMatchFull, updated.Status)

		// A seventh player bounces off the closed match.
		late := createTestUser(t, db, "late-joiner")
		_, err = repo.JoinMatch(m.ID, late.ID, TeamA, PositionForward)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	})

	t.Run("joining a cancelled match rejected", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)
		_, err := repo.CancelMatch(m.ID, creator.ID)
		require.NoError(t, err)

		u := createTestUser(t, db, "too-late")
		_, err = repo.JoinMatch(m.ID, u.ID, TeamA, PositionForward)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	})

	t.Run("joining a missing match rejected", func(t *testing.T) {
		u := createTestUser(t, db, "lost")
		_, err := repo.JoinMatch(99999, u.ID, TeamA, PositionForward)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestLeaveMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")

	t.Run("leave frees the slot for rejoin", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)
		u := createTestUser(t, db, "leaver")

		_, err := repo.JoinMatch(m.ID, u.ID, TeamA, PositionGoalkeeper)
		require.NoError(t, err)

		_, err = repo.LeaveMatch(m.ID, u.ID)
		require.NoError(t, err)

		// The goalkeeper slot and the (match, user) pair are both free again.
		_, err = repo.JoinMatch(m.ID, u.ID, TeamA, PositionGoalkeeper)
		require.NoError(t, err)
	})

	t.Run("leaving a full match reopens it", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 6)

		var last *user.User
		slots := []struct {
			team TeamSide
			pos  Position
		}{
			{TeamA, PositionGoalkeeper}, {TeamA, PositionDefender}, {TeamA, PositionMidfielder},
			{TeamB, PositionGoalkeeper}, {TeamB, PositionDefender}, {TeamB, PositionMidfielder},
		}
		for i, slot := range slots {
			u := createTestUser(t, db, fmt.Sprintf("reopen-joiner-%d", i))
			_, err := repo.JoinMatch(m.ID, u.ID, slot.team, slot.pos)
			require.NoError(t, err)
			last = u
		}

		updated, err := repo.GetMatchByID(m.ID)
		require.NoError(t, err)
		require.Equal(t, StatusMatchFull, updated.Status)

		_, err = repo.LeaveMatch(m.ID, last.ID)
		require.NoError(t, err)

		updated, err = repo.GetMatchByID(m.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusMatchOpen, updated.Status)

		// Re-filling the vacated slot flips the match back to full.
		sub := createTestUser(t, db, "reopen-substitute")
		_, err = repo.JoinMatch(m.ID, sub.ID, TeamB, PositionMidfielder)
		require.NoError(t, err)

		updated, err = repo.GetMatchByID(m.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusMatchFull, updated.Status)
	})

	t.Run("non-participant cannot leave", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)
		u := createTestUser(t, db, "bystander")

		_, err := repo.LeaveMatch(m.ID, u.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("cannot leave a terminal match", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)
		u := createTestUser(t, db, "stuck")
		_, err := repo.JoinMatch(m.ID, u.ID, TeamA, PositionForward)
		require.NoError(t, err)

		_, err = repo.CompleteMatch(m.ID, creator.ID)
		require.NoError(t, err)

		_, err = repo.LeaveMatch(m.ID, u.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	})
}

func TestTerminalTransitions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")
	stranger := createTestUser(t, db, "stranger")

	t.Run("only the creator cancels", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)

		_, err := repo.CancelMatch(m.ID, stranger.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

		cancelled, err := repo.CancelMatch(m.ID, creator.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusMatchCancelled, cancelled.Status)
	})

	t.Run("terminal states absorb", func(t *testing.T) {
		m := createOpenMatch(t, repo, creator.ID, 10)

		_, err := repo.CompleteMatch(m.ID, creator.ID)
		require.NoError(t, err)

		// Completing or cancelling again fails rather than silently succeeding.
		_, err = repo.CompleteMatch(m.ID, creator.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))

		_, err = repo.CancelMatch(m.ID, creator.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	})
}

func TestExpireStaleMatches(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")

	stale := createOpenMatch(t, repo, creator.ID, 10)
	fresh := createOpenMatch(t, repo, creator.ID, 10)

	// Backdate one match past its kickoff.
	require.NoError(t, db.Model(&Match{}).Where("id = ?", stale.ID).
		Update("scheduled_at", time.Now().Add(-2*time.Hour)).Error)

	expired, err := repo.ExpireStaleMatches()
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	got, err := repo.GetMatchByID(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchCancelled, got.Status)

	got, err = repo.GetMatchByID(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchOpen, got.Status)
}

func TestGetOpenMatches(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")

	m1 := createOpenMatch(t, repo, creator.ID, 10)
	m2 := createOpenMatch(t, repo, creator.ID, 10)
	_, err := repo.CancelMatch(m2.ID, creator.ID)
	require.NoError(t, err)

	matches, total, err := repo.GetOpenMatches(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, matches, 1)
	assert.Equal(t, m1.ID, matches[0].ID)
}

func TestGetJoinedMatches(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMatchRepository(db)
	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")

	joined := createOpenMatch(t, repo, creator.ID, 10)
	createOpenMatch(t, repo, creator.ID, 10)

	_, err := repo.JoinMatch(joined.ID, joiner.ID, TeamB, PositionMidfielder)
	require.NoError(t, err)

	matches, total, err := repo.GetJoinedMatches(joiner.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, matches, 1)
	assert.Equal(t, joined.ID, matches[0].ID)
}
