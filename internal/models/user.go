package models

import "time"

// User represents a learner account with its gamification aggregates.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FirstName    string     `gorm:"size:128;not null" json:"first_name"`
	LastName     string     `gorm:"size:128;not null" json:"last_name"`
	TotalXP      int        `gorm:"not null;default:0" json:"total_xp"`
	Level        int        `gorm:"not null;default:1" json:"level"`
	Streak       int        `gorm:"not null;default:0" json:"streak"`
	LastActiveAt *time.Time `json:"last_active_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DisplayName returns the learner's full name for gallery and leaderboard views.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
