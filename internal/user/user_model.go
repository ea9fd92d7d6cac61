package user

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name       string    `json:"name"`
	Username   string    `gorm:"unique;not null" json:"username"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Password   string    `json:"-"`
	Country    string    `gorm:"index" json:"country,omitempty"`
	City       string    `json:"city,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Roles      []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
	LastActive time.Time `json:"last_active"`

	// Preferred field position is informational; actual slots are claimed per match.
	PreferredPosition string `gorm:"index" json:"preferred_position,omitempty"`
}

type Role struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

// SkillProfile is the aggregate skill snapshot derived from all ratings a user
// has received. Written only by the rating aggregator. A nil attribute means
// "no grade received yet", which is distinct from zero.
type SkillProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Speed     *int `json:"speed,omitempty"`
	Defense   *int `json:"defense,omitempty"`
	Offense   *int `json:"offense,omitempty"`
	Shooting  *int `json:"shooting,omitempty"`
	Dribbling *int `json:"dribbling,omitempty"`
	Passing   *int `json:"passing,omitempty"`

	OverallScore *int `gorm:"index" json:"overall_score,omitempty"`
	RatingsCount int  `gorm:"default:0" json:"ratings_count"`
}

// PublicUser is the trimmed user shape embedded in rosters and leaderboards.
type PublicUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Country  string `json:"country,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Country:  u.Country,
		Avatar:   u.Avatar,
	}
}
