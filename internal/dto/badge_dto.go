package dto

import (
	"time"

	"github.com/noah-isme/teachback-api/internal/models"
)

// BadgeResponse is the catalog view of a badge.
type BadgeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// UserBadgeResponse is a badge a user has earned, with when it was earned.
type UserBadgeResponse struct {
	Badge    BadgeResponse `json:"badge"`
	EarnedAt time.Time     `json:"earned_at"`
}

// NewBadgeResponse converts a Badge model into a DTO.
func NewBadgeResponse(model models.Badge) BadgeResponse {
	return BadgeResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Icon:        model.Icon,
		Color:       model.Color,
	}
}

// NewBadgeResponseSlice converts badge models into DTOs.
func NewBadgeResponseSlice(badges []models.Badge) []BadgeResponse {
	responses := make([]BadgeResponse, 0, len(badges))
	for _, badge := range badges {
		responses = append(responses, NewBadgeResponse(badge))
	}
	return responses
}

// NewUserBadgeResponseSlice converts earned-badge models into DTOs.
func NewUserBadgeResponseSlice(earned []models.UserBadge) []UserBadgeResponse {
	responses := make([]UserBadgeResponse, 0, len(earned))
	for _, userBadge := range earned {
		responses = append(responses, UserBadgeResponse{
			Badge:    NewBadgeResponse(userBadge.Badge),
			EarnedAt: userBadge.EarnedAt,
		})
	}
	return responses
}
