package rating

import (
	"github.com/tunislock/tunislock-api/internal/match"
	"github.com/tunislock/tunislock-api/internal/user"
	"gorm.io/gorm"
)

// Grade is a letter grade for one skill attribute.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// gradeScores maps letter grades to their numeric midpoints used by the
// aggregation pipeline.
var gradeScores = map[Grade]int{
	GradeS: 95,
	GradeA: 85,
	GradeB: 75,
	GradeC: 65,
	GradeD: 55,
}

// Score returns the numeric midpoint for the grade, false for unknown grades.
func (g Grade) Score() (int, bool) {
	s, ok := gradeScores[g]
	return s, ok
}

func (g Grade) Valid() bool {
	_, ok := gradeScores[g]
	return ok
}

// PlayerRating is one participant's assessment of a teammate or opponent
// after a completed match. Each attribute is optional; a nil grade means
// the rater chose not to grade that attribute.
type PlayerRating struct {
	gorm.Model
	MatchID     uint        `gorm:"uniqueIndex:idx_rating_match_rater_rated;not null" json:"match_id"`
	Match       match.Match `gorm:"foreignKey:MatchID" json:"-"`
	RaterID     uint        `gorm:"uniqueIndex:idx_rating_match_rater_rated;not null" json:"rater_id"`
	Rater       user.User   `gorm:"foreignKey:RaterID" json:"-"`
	RatedUserID uint        `gorm:"uniqueIndex:idx_rating_match_rater_rated;not null;index" json:"rated_user_id"`
	RatedUser   user.User   `gorm:"foreignKey:RatedUserID" json:"-"`

	Speed     *Grade `gorm:"type:VARCHAR(1)" json:"speed,omitempty"`
	Defense   *Grade `gorm:"type:VARCHAR(1)" json:"defense,omitempty"`
	Offense   *Grade `gorm:"type:VARCHAR(1)" json:"offense,omitempty"`
	Shooting  *Grade `gorm:"type:VARCHAR(1)" json:"shooting,omitempty"`
	Dribbling *Grade `gorm:"type:VARCHAR(1)" json:"dribbling,omitempty"`
	Passing   *Grade `gorm:"type:VARCHAR(1)" json:"passing,omitempty"`

	Suggestion string `gorm:"type:VARCHAR(500)" json:"suggestion,omitempty"`
}

// Grades returns the set attributes as a map keyed by attribute name.
func (r *PlayerRating) Grades() map[string]Grade {
	out := make(map[string]Grade, 6)
	set := func(name string, g *Grade) {
		if g != nil {
			out[name] = *g
		}
	}
	set("speed", r.Speed)
	set("defense", r.Defense)
	set("offense", r.Offense)
	set("shooting", r.Shooting)
	set("dribbling", r.Dribbling)
	set("passing", r.Passing)
	return out
}

// HasContent reports whether the rating carries at least one grade or a suggestion.
func (r *PlayerRating) HasContent() bool {
	return len(r.Grades()) > 0 || r.Suggestion != ""
}
