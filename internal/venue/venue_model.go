package venue

import (
	"github.com/tunislock/tunislock-api/internal/models"
)

// Venue is a bookable football pitch.
type Venue struct {
	models.BaseModel
	Name        string             `json:"name" gorm:"uniqueIndex;not null"`
	Address     string             `json:"address" gorm:"not null"`
	City        string             `json:"city" gorm:"index"`
	PitchType   string             `json:"pitch_type"` // grass, turf, indoor
	Capacity    int                `json:"capacity"`
	Amenities   models.StringSlice `json:"amenities" gorm:"type:jsonb"`
	Coordinates models.Coordinates `json:"coordinates" gorm:"type:jsonb"`
	ContactInfo string             `json:"contact_info"`
	Verified    bool               `json:"verified" gorm:"default:false"`
}
