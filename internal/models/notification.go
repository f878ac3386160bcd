package models

import "time"

// Notification is a message surfaced to a user, created when gamification
// events fire (badge earned, level up).
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Type      string     `gorm:"size:32;not null" json:"type"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	// NotificationTypeBadge announces a newly earned badge.
	NotificationTypeBadge = "badge_earned"
	// NotificationTypeLevelUp announces crossing a level boundary.
	NotificationTypeLevelUp = "level_up"
)
