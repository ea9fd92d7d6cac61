package match

import (
	"fmt"

	"github.com/tunislock/tunislock-api/pkg/apperrors"
)

// Slot-capacity rules. Ceilings are re-derived from PlayersNeeded on every
// join; they are never cached on the match row.

// MaxPerTeam is the hard cap of one team's roster.
func MaxPerTeam(playersNeeded int) int {
	return playersNeeded / 2
}

// MaxFieldPlayersPerTeam reserves the goalkeeper slot out of the team cap.
func MaxFieldPlayersPerTeam(playersNeeded int) int {
	return MaxPerTeam(playersNeeded) - 1
}

// FieldPositionCeiling spreads the field slots over the three field positions
// as evenly as possible, rounding up. The ceilings may sum to more slots than
// exist; the total-capacity check stays the binding constraint.
func FieldPositionCeiling(playersNeeded int) int {
	mf := MaxFieldPlayersPerTeam(playersNeeded)
	return (mf + 2) / 3
}

// PositionCeiling is the per-team cap for a single position.
func PositionCeiling(playersNeeded int, pos Position) int {
	if pos == PositionGoalkeeper {
		return 1
	}
	return FieldPositionCeiling(playersNeeded)
}

// ValidatePlayersNeeded enforces the creation-time roster size invariant.
func ValidatePlayersNeeded(n int) error {
	if n < MinPlayersNeeded || n > MaxPlayersNeeded {
		return apperrors.Validation(fmt.Sprintf("players_needed must be between %d and %d", MinPlayersNeeded, MaxPlayersNeeded))
	}
	if n%2 != 0 {
		return apperrors.Validation("players_needed must be an even number")
	}
	return nil
}

// rosterCounts is the team/position tally read inside the join transaction.
type rosterCounts struct {
	Total        int64 // all participants of the match
	Team         int64 // participants on the chosen team
	TeamPosition int64 // participants on the chosen team holding the chosen position
}

// checkJoinCapacity applies the slot-capacity rules to a consistent tally.
// Every rejection is a typed capacity error surfaced to the caller.
func checkJoinCapacity(playersNeeded int, counts rosterCounts, pos Position) error {
	if counts.Total >= int64(playersNeeded) {
		return apperrors.Capacity("match is already full")
	}
	if counts.Team >= int64(MaxPerTeam(playersNeeded)) {
		return apperrors.Capacity("team is already full")
	}
	if pos == PositionGoalkeeper {
		if counts.TeamPosition >= 1 {
			return apperrors.Capacity("team already has a goalkeeper")
		}
		return nil
	}
	if counts.TeamPosition >= int64(FieldPositionCeiling(playersNeeded)) {
		return apperrors.Capacity(fmt.Sprintf("no %s slots left on this team", pos))
	}
	return nil
}
