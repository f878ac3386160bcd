package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/models"
	"github.com/noah-isme/teachback-api/internal/repository"
)

const defaultRecommendedLimit = 4

// TopicService exposes the topic catalog and per-user recommendations.
type TopicService interface {
	List(ctx context.Context, subject, difficulty string) ([]dto.TopicResponse, error)
	Get(ctx context.Context, id uint) (dto.TopicResponse, error)
	Recommended(ctx context.Context, userID uint, limit int) ([]dto.TopicResponse, error)
}

type topicService struct {
	topics repository.TopicRepository
	logger zerolog.Logger
}

// NewTopicService constructs a TopicService instance.
func NewTopicService(topics repository.TopicRepository, logger zerolog.Logger) TopicService {
	return &topicService{
		topics: topics,
		logger: logger.With().Str("component", "topic_service").Logger(),
	}
}

func (s *topicService) List(ctx context.Context, subject, difficulty string) ([]dto.TopicResponse, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, err
	}

	subject = strings.ToLower(strings.TrimSpace(subject))
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))

	filtered := make([]models.Topic, 0, len(topics))
	for _, topic := range topics {
		if subject != "" && topic.Subject != subject {
			continue
		}
		if difficulty != "" && topic.Difficulty != difficulty {
			continue
		}
		filtered = append(filtered, topic)
	}

	return dto.NewTopicResponseSlice(filtered), nil
}

func (s *topicService) Get(ctx context.Context, id uint) (dto.TopicResponse, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TopicResponse{}, ErrTopicNotFound
		}
		return dto.TopicResponse{}, err
	}
	return dto.NewTopicResponse(topic), nil
}

func (s *topicService) Recommended(ctx context.Context, userID uint, limit int) ([]dto.TopicResponse, error) {
	if limit <= 0 {
		limit = defaultRecommendedLimit
	}
	topics, err := s.topics.ListUnexplained(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewTopicResponseSlice(topics), nil
}
