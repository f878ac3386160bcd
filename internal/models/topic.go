package models

import "time"

// Topic is an academic subject prompt users can explain. Reference data,
// immutable once seeded.
type Topic struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	Subject          string    `gorm:"size:32;index;not null" json:"subject"`
	Difficulty       string    `gorm:"size:16;not null" json:"difficulty"`
	XPReward         int       `gorm:"not null;default:50" json:"xp_reward"`
	EstimatedMinutes int       `gorm:"not null;default:5" json:"estimated_minutes"`
	CreatedAt        time.Time `json:"created_at"`
}

const (
	// DifficultyEasy marks topics suitable for beginners.
	DifficultyEasy = "easy"
	// DifficultyMedium marks topics of intermediate depth.
	DifficultyMedium = "medium"
	// DifficultyHard marks topics that demand thorough understanding.
	DifficultyHard = "hard"
)

// Subjects lists the supported academic subjects.
var Subjects = []string{
	"mathematics", "science", "history", "physics",
	"chemistry", "biology", "english", "geography",
}

// IsValidSubject reports whether the subject is part of the supported set.
func IsValidSubject(subject string) bool {
	for _, s := range Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
