package notification

import (
	"log"

	"gorm.io/gorm"
)

// Dispatcher is the one-way side channel the other modules use on state
// change. Dispatch is best-effort: a failed dispatch must never roll back or
// fail the primary operation, so it returns nothing and logs on error.
type Dispatcher interface {
	Dispatch(userID uint, notificationType string, payload Payload)
}

// DBDispatcher stores notifications as rows for the list endpoint to serve.
type DBDispatcher struct {
	db *gorm.DB
}

func NewDBDispatcher(db *gorm.DB) *DBDispatcher {
	return &DBDispatcher{db: db}
}

func (d *DBDispatcher) Dispatch(userID uint, notificationType string, payload Payload) {
	n := Notification{
		UserID:  userID,
		Type:    notificationType,
		Payload: payload,
	}
	if err := d.db.Create(&n).Error; err != nil {
		log.Printf("notification dispatch failed (user=%d type=%s): %v", userID, notificationType, err)
	}
}
