package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/teachback-api/internal/models"
)

// SubmitExplanationRequest is the multipart/json payload for submitting an
// explanation. Content carries the text for text submissions; audio and video
// submissions attach a media file instead.
type SubmitExplanationRequest struct {
	TopicID      uint   `json:"topic_id" form:"topic_id" validate:"required"`
	Type         string `json:"type" form:"type" validate:"required,oneof=text audio video"`
	Content      string `json:"content" form:"content"`
	FeedbackMode string `json:"feedback_mode" form:"feedback_mode" validate:"omitempty,oneof=encouraging challenging socratic professional"`
	IsPublic     *bool  `json:"is_public" form:"is_public"`
}

// VoteRequest marks an explanation as helpful or not.
type VoteRequest struct {
	IsUpvote *bool `json:"is_upvote" validate:"required"`
}

// AuthorResponse is the compact author view embedded in explanation payloads.
type AuthorResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Level     int    `json:"level"`
}

// ExplanationResponse is the API view of a stored explanation.
type ExplanationResponse struct {
	ID           uint               `json:"id"`
	Type         string             `json:"type"`
	Content      string             `json:"content"`
	FileURL      string             `json:"file_url,omitempty"`
	FeedbackMode string             `json:"feedback_mode"`
	Score        int                `json:"score"`
	Evaluation   datatypes.JSONMap  `json:"evaluation,omitempty"`
	XPEarned     int                `json:"xp_earned"`
	Upvotes      int                `json:"upvotes"`
	Downvotes    int                `json:"downvotes"`
	IsPublic     bool               `json:"is_public"`
	CreatedAt    time.Time          `json:"created_at"`
	Author       *AuthorResponse    `json:"author,omitempty"`
	Topic        *TopicResponse     `json:"topic,omitempty"`
}

// SubmissionResult is returned after the scoring pipeline completes. It pairs
// the stored explanation with the progression changes it caused.
type SubmissionResult struct {
	Explanation ExplanationResponse `json:"explanation"`
	XPEarned    int                 `json:"xp_earned"`
	TotalXP     int                 `json:"total_xp"`
	Level       int                 `json:"level"`
	LeveledUp   bool                `json:"leveled_up"`
	Streak      int                 `json:"streak"`
	NewBadges   []BadgeResponse     `json:"new_badges"`
}

// NewExplanationResponse converts an Explanation model into a DTO. The author
// and topic are included only when the associations were preloaded.
func NewExplanationResponse(model models.Explanation) ExplanationResponse {
	response := ExplanationResponse{
		ID:           model.ID,
		Type:         model.Type,
		Content:      model.Content,
		FileURL:      model.FileURL,
		FeedbackMode: model.FeedbackMode,
		Score:        model.Score,
		Evaluation:   model.Evaluation,
		XPEarned:     model.XPEarned,
		Upvotes:      model.Upvotes,
		Downvotes:    model.Downvotes,
		IsPublic:     model.IsPublic,
		CreatedAt:    model.CreatedAt,
	}
	if model.User.ID != 0 {
		response.Author = &AuthorResponse{
			ID:        model.User.ID,
			Username:  model.User.Username,
			FirstName: model.User.FirstName,
			LastName:  model.User.LastName,
			Level:     model.User.Level,
		}
	}
	if model.Topic.ID != 0 {
		topic := NewTopicResponse(model.Topic)
		response.Topic = &topic
	}
	return response
}

// NewExplanationResponseSlice converts explanation models into DTOs.
func NewExplanationResponseSlice(explanations []models.Explanation) []ExplanationResponse {
	responses := make([]ExplanationResponse, 0, len(explanations))
	for _, explanation := range explanations {
		responses = append(responses, NewExplanationResponse(explanation))
	}
	return responses
}
