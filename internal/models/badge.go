package models

import (
	"time"

	"gorm.io/datatypes"
)

// Badge is a catalog entry describing an achievement and the statistic
// thresholds that unlock it. Criteria keys map to user statistics; any
// single satisfied key awards the badge.
type Badge struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Icon        string            `gorm:"size:64;not null" json:"icon"`
	Color       string            `gorm:"size:32;not null" json:"color"`
	Criteria    datatypes.JSONMap `gorm:"not null" json:"criteria"`
	CreatedAt   time.Time         `json:"created_at"`
}

// UserBadge links an earned badge to a user. The composite unique index
// enforces the at-most-once award invariant at the storage layer.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badges_user_badge" json:"user_id"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badges_user_badge" json:"badge_id"`
	EarnedAt time.Time `gorm:"autoCreateTime" json:"earned_at"`
	Badge    Badge     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"badge"`
}
