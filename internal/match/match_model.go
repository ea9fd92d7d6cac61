package match

import (
	"strings"
	"time"

	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/internal/venue"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusMatchOpen      MatchStatus = "open"
	StatusMatchFull      MatchStatus = "full"
	StatusMatchCancelled MatchStatus = "cancelled"
	StatusMatchCompleted MatchStatus = "completed"
)

// TeamSide identifies one of the two rosters of a match.
type TeamSide string

const (
	TeamA TeamSide = "A"
	TeamB TeamSide = "B"
)

// Position is a player's slot within a team.
type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionForward    Position = "forward"
)

// FieldPositions are the non-goalkeeper positions sharing the remaining team slots.
var FieldPositions = []Position{PositionDefender, PositionMidfielder, PositionForward}

const (
	MinPlayersNeeded = 6
	MaxPlayersNeeded = 22
)

// Match represents one scheduled team game. Matches are never hard-deleted:
// cancelled and completed rows are retained for rating and history.
type Match struct {
	gorm.Model
	CreatorID uint      `json:"creator_id" gorm:"index;not null"`
	Creator   user.User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`

	Location      string    `json:"location" gorm:"not null"`
	ScheduledAt   time.Time `json:"scheduled_at" gorm:"index;not null"`
	PlayersNeeded int       `json:"players_needed" gorm:"not null"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`

	LocationConfirmed bool `json:"location_confirmed" gorm:"default:false"`

	// PartyName is unique case-insensitively; PartyNameKey holds the
	// lowercased copy backing the unique index.
	PartyName    string `json:"party_name" gorm:"not null"`
	PartyNameKey string `json:"-" gorm:"uniqueIndex;not null"`

	Status MatchStatus `json:"status" gorm:"index;default:'open'"`

	VenueID *uint        `json:"venue_id,omitempty" gorm:"index"`
	Venue   *venue.Venue `json:"venue,omitempty" gorm:"foreignKey:VenueID"`

	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:MatchID"`
}

// IsTerminal reports whether the match reached an absorbing state.
func (m *Match) IsTerminal() bool {
	return m.Status == StatusMatchCancelled || m.Status == StatusMatchCompleted
}

// PartyNameKeyFor normalizes a party name for the case-insensitive uniqueness check.
func PartyNameKeyFor(partyName string) string {
	return strings.ToLower(strings.TrimSpace(partyName))
}

// DefaultPartyName is used when the creator does not pick one.
func DefaultPartyName(location string) string {
	return "Football at " + location
}

// Participant is one user's confirmed membership in one match. Team and
// position are fixed once joined; a user must leave and rejoin to change
// them. Rows are removed outright on leave so the (match, user) uniqueness
// holds across rejoin cycles.
type Participant struct {
	gorm.Model
	MatchID uint      `json:"match_id" gorm:"index;not null;uniqueIndex:idx_participant_match_user"`
	UserID  uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_participant_match_user"`
	User    user.User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Team     TeamSide `json:"team" gorm:"index;not null"`
	Position Position `json:"position" gorm:"index;not null"`
}
