package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/teachback-api/internal/gamification"
	"github.com/noah-isme/teachback-api/internal/models"
	"github.com/noah-isme/teachback-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService provisions the default topic and badge catalogs.
type SeedService interface {
	SeedTopics(ctx context.Context, token string, topics []models.Topic) (int64, error)
	SeedBadges(ctx context.Context, token string, badges []models.Badge) (int64, error)
}

type seedService struct {
	topics  repository.TopicRepository
	badges  repository.BadgeRepository
	enabled bool
	token   string
	logger  zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(topics repository.TopicRepository, badges repository.BadgeRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		topics:  topics,
		badges:  badges,
		enabled: enabled,
		token:   token,
		logger:  logger.With().Str("component", "seed_service").Logger(),
	}
}

// SeedTopics upserts the given topics, falling back to the default catalog
// when none are provided.
func (s *seedService) SeedTopics(ctx context.Context, token string, topics []models.Topic) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}
	if len(topics) == 0 {
		topics = DefaultTopics()
	}
	affected, err := s.topics.UpsertBatch(ctx, topics)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("topics seeded")
	return affected, nil
}

// SeedBadges upserts the given badges, falling back to the default catalog
// when none are provided.
func (s *seedService) SeedBadges(ctx context.Context, token string, badges []models.Badge) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}
	if len(badges) == 0 {
		badges = DefaultBadges()
	}
	affected, err := s.badges.UpsertCatalog(ctx, badges)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("badges seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return constantTimeCompare(expected, strings.TrimSpace(token))
}

func constantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}

// DefaultTopics is the starter topic catalog.
func DefaultTopics() []models.Topic {
	return []models.Topic{
		{Title: "Photosynthesis Process", Description: "Explain how plants convert light energy into chemical energy.", Subject: "biology", Difficulty: models.DifficultyMedium, XPReward: 75, EstimatedMinutes: 10},
		{Title: "Quadratic Equations", Description: "Explain how to solve quadratic equations and what their graphs look like.", Subject: "mathematics", Difficulty: models.DifficultyMedium, XPReward: 80, EstimatedMinutes: 12},
		{Title: "Newton's Laws of Motion", Description: "Explain the three laws of motion with everyday examples.", Subject: "physics", Difficulty: models.DifficultyMedium, XPReward: 75, EstimatedMinutes: 10},
		{Title: "Chemical Bonding", Description: "Explain ionic and covalent bonds and why atoms form them.", Subject: "chemistry", Difficulty: models.DifficultyEasy, XPReward: 60, EstimatedMinutes: 8},
		{Title: "World War II Causes", Description: "Explain the main causes that led to the Second World War.", Subject: "history", Difficulty: models.DifficultyEasy, XPReward: 55, EstimatedMinutes: 8},
		{Title: "Calculus Integration", Description: "Explain what integration means and how it relates to area under a curve.", Subject: "mathematics", Difficulty: models.DifficultyHard, XPReward: 90, EstimatedMinutes: 15},
	}
}

// DefaultBadges is the starter badge catalog. Subject-scoped badges carry a
// "subject" key that the rule engine carries but does not evaluate.
func DefaultBadges() []models.Badge {
	return []models.Badge{
		{Name: "First Steps", Description: "Complete your first explanation", Icon: "footprints", Color: "pink", Criteria: datatypes.JSONMap{gamification.CriterionExplanations: 1}},
		{Name: "Getting Started", Description: "Complete 5 explanations", Icon: "play", Color: "blue", Criteria: datatypes.JSONMap{gamification.CriterionExplanations: 5}},
		{Name: "Science Specialist", Description: "Complete 10 science explanations", Icon: "flask", Color: "green", Criteria: datatypes.JSONMap{gamification.CriterionExplanations: 10, "subject": "science"}},
		{Name: "Math Master", Description: "Complete 10 mathematics explanations", Icon: "calculator", Color: "purple", Criteria: datatypes.JSONMap{gamification.CriterionExplanations: 10, "subject": "mathematics"}},
		{Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "flame", Color: "red", Criteria: datatypes.JSONMap{gamification.CriterionStreak: 7}},
		{Name: "Consistency King", Description: "Maintain a 30-day streak", Icon: "crown", Color: "yellow", Criteria: datatypes.JSONMap{gamification.CriterionStreak: 30}},
		{Name: "Top Scorer", Description: "Achieve a 90+ average score", Icon: "star", Color: "yellow", Criteria: datatypes.JSONMap{gamification.CriterionAverageScore: 90}},
		{Name: "Prolific Teacher", Description: "Complete 50 explanations", Icon: "graduation-cap", Color: "blue", Criteria: datatypes.JSONMap{gamification.CriterionExplanations: 50}},
		{Name: "Rising Star", Description: "Reach level 5", Icon: "sparkles", Color: "purple", Criteria: datatypes.JSONMap{gamification.CriterionLevel: 5}},
		{Name: "Elite Learner", Description: "Reach level 10", Icon: "gem", Color: "purple", Criteria: datatypes.JSONMap{gamification.CriterionLevel: 10}},
		{Name: "Community Helper", Description: "Receive 50 upvotes on your explanations", Icon: "heart", Color: "red", Criteria: datatypes.JSONMap{gamification.CriterionUpvotes: 50}},
		{Name: "Popular Explainer", Description: "Receive 100 upvotes on your explanations", Icon: "thumbs-up", Color: "green", Criteria: datatypes.JSONMap{gamification.CriterionUpvotes: 100}},
		{Name: "Well Rounded", Description: "Explain topics in 5 different subjects", Icon: "palette", Color: "blue", Criteria: datatypes.JSONMap{gamification.CriterionSubjects: 5}},
	}
}
