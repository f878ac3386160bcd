package dto

import (
	"time"

	"github.com/noah-isme/teachback-api/internal/models"
)

// TopicResponse is returned to API clients when browsing topics.
type TopicResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Subject          string    `json:"subject"`
	Difficulty       string    `json:"difficulty"`
	XPReward         int       `json:"xp_reward"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewTopicResponse converts a Topic model into a DTO.
func NewTopicResponse(model models.Topic) TopicResponse {
	return TopicResponse{
		ID:               model.ID,
		Title:            model.Title,
		Description:      model.Description,
		Subject:          model.Subject,
		Difficulty:       model.Difficulty,
		XPReward:         model.XPReward,
		EstimatedMinutes: model.EstimatedMinutes,
		CreatedAt:        model.CreatedAt,
	}
}

// NewTopicResponseSlice converts topic models into DTOs.
func NewTopicResponseSlice(topics []models.Topic) []TopicResponse {
	responses := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		responses = append(responses, NewTopicResponse(topic))
	}
	return responses
}
