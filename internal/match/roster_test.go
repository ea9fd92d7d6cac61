package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
)

func TestMaxPerTeam(t *testing.T) {
	assert.Equal(t, 3, MaxPerTeam(6))
	assert.Equal(t, 5, MaxPerTeam(10))
	assert.Equal(t, 11, MaxPerTeam(22))
}

func TestMaxFieldPlayersPerTeam(t *testing.T) {
	assert.Equal(t, 2, MaxFieldPlayersPerTeam(6))
	assert.Equal(t, 4, MaxFieldPlayersPerTeam(10))
	assert.Equal(t, 10, MaxFieldPlayersPerTeam(22))
}

func TestFieldPositionCeiling(t *testing.T) {
	// 10 players: 4 field players per team spread over 3 positions rounds up to 2.
	assert.Equal(t, 2, FieldPositionCeiling(10))
	// 6 players: 2 field players, ceiling 1 per position.
	assert.Equal(t, 1, FieldPositionCeiling(6))
	// 22 players: 10 field players, ceiling 4.
	assert.Equal(t, 4, FieldPositionCeiling(22))
}

func TestPositionCeiling(t *testing.T) {
	// Exactly one goalkeeper per team regardless of match size.
	assert.Equal(t, 1, PositionCeiling(6, PositionGoalkeeper))
	assert.Equal(t, 1, PositionCeiling(22, PositionGoalkeeper))

	assert.Equal(t, 2, PositionCeiling(10, PositionDefender))
	assert.Equal(t, 2, PositionCeiling(10, PositionMidfielder))
	assert.Equal(t, 2, PositionCeiling(10, PositionForward))
}

func TestValidatePlayersNeeded(t *testing.T) {
	require.NoError(t, ValidatePlayersNeeded(6))
	require.NoError(t, ValidatePlayersNeeded(10))
	require.NoError(t, ValidatePlayersNeeded(22))

	tests := []struct {
		name string
		n    int
	}{
		{"below minimum", 4},
		{"above maximum", 24},
		{"odd count", 11},
		{"zero", 0},
		{"negative", -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlayersNeeded(tt.n)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestCheckJoinCapacity(t *testing.T) {
	t.Run("empty roster accepts any position", func(t *testing.T) {
		err := checkJoinCapacity(10, rosterCounts{}, PositionForward)
		require.NoError(t, err)
		err = checkJoinCapacity(10, rosterCounts{}, PositionGoalkeeper)
		require.NoError(t, err)
	})

	t.Run("full match rejected", func(t *testing.T) {
		err := checkJoinCapacity(10, rosterCounts{Total: 10}, PositionForward)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindCapacity, apperrors.KindOf(err))
	})

	t.Run("full team rejected even when match has room", func(t *testing.T) {
		err := checkJoinCapacity(10, rosterCounts{Total: 5, Team: 5}, PositionForward)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindCapacity, apperrors.KindOf(err))
	})

	t.Run("second goalkeeper on a team rejected", func(t *testing.T) {
		err := checkJoinCapacity(10, rosterCounts{Total: 1, Team: 1, TeamPosition: 1}, PositionGoalkeeper)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindCapacity, apperrors.KindOf(err))
	})

	t.Run("field position at ceiling rejected", func(t *testing.T) {
		// 10 players: ceiling is 2 per field position.
		err := checkJoinCapacity(10, rosterCounts{Total: 2, Team: 2, TeamPosition: 2}, PositionMidfielder)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindCapacity, apperrors.KindOf(err))
	})

	t.Run("field position below ceiling accepted", func(t *testing.T) {
		err := checkJoinCapacity(10, rosterCounts{Total: 2, Team: 2, TeamPosition: 1}, PositionMidfielder)
		require.NoError(t, err)
	})
}

func TestPartyNameKeyFor(t *testing.T) {
	assert.Equal(t, PartyNameKeyFor("Friday Night Ballers"), PartyNameKeyFor("friday night ballers"))
	assert.Equal(t, PartyNameKeyFor("  Spaced  "), PartyNameKeyFor("spaced"))
}

func TestDefaultPartyName(t *testing.T) {
	assert.Equal(t, "Football at El Menzah", DefaultPartyName("El Menzah"))
}
