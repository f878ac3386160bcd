package models

import (
	"time"

	"gorm.io/datatypes"
)

// Explanation is one submitted teaching attempt, scored by the evaluator.
// Vote counters mutate after creation; everything else is written once.
type Explanation struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"not null;index" json:"user_id"`
	TopicID      uint              `gorm:"not null;index" json:"topic_id"`
	Type         string            `gorm:"size:16;not null" json:"type"`
	Content      string            `gorm:"type:text" json:"content"`
	FileURL      string            `gorm:"size:512" json:"file_url"`
	FeedbackMode string            `gorm:"size:32;not null" json:"feedback_mode"`
	Score        int               `gorm:"not null;default:0" json:"score"`
	Evaluation   datatypes.JSONMap `json:"evaluation"`
	XPEarned     int               `gorm:"not null;default:0" json:"xp_earned"`
	Upvotes      int               `gorm:"not null;default:0" json:"upvotes"`
	Downvotes    int               `gorm:"not null;default:0" json:"downvotes"`
	IsPublic     bool              `gorm:"not null;default:true" json:"is_public"`
	CreatedAt    time.Time         `json:"created_at"`
	User         User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	Topic        Topic             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"topic"`
}

const (
	// ExplanationTypeText is a typed explanation.
	ExplanationTypeText = "text"
	// ExplanationTypeAudio is a recorded explanation, transcribed before scoring.
	ExplanationTypeAudio = "audio"
	// ExplanationTypeVideo is a video explanation; its caption text is scored.
	ExplanationTypeVideo = "video"
)

// Vote records a single user's up/down vote on an explanation.
// At most one row exists per (user, explanation); a later vote in the other
// direction updates the row instead of inserting a second one.
type Vote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_votes_user_explanation" json:"user_id"`
	ExplanationID uint      `gorm:"not null;uniqueIndex:idx_votes_user_explanation" json:"explanation_id"`
	IsUpvote      bool      `gorm:"not null" json:"is_upvote"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
