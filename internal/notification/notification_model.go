package notification

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Notification types dispatched by the other modules.
const (
	TypeMatchJoined    = "match_joined"
	TypeMatchLeft      = "match_left"
	TypeMatchFull      = "match_full"
	TypeMatchCancelled = "match_cancelled"
	TypeMatchCompleted = "match_completed"
	TypeMatchInvite    = "match_invite"
	TypeFriendRequest  = "friend_request"
	TypeFriendAccepted = "friend_accepted"
	TypeRatingReceived = "rating_received"
)

// Payload is the JSONB column carrying type-specific details.
type Payload map[string]interface{}

func (p Payload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Payload) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Payload: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, p)
}

type Notification struct {
	gorm.Model
	UserID  uint    `json:"user_id" gorm:"index;not null"`
	Type    string  `json:"type" gorm:"index;not null"`
	Payload Payload `json:"payload" gorm:"type:json"`
	Read    bool    `json:"read" gorm:"default:false"`
}
