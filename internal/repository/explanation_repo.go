package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
)

// UserAggregates captures per-user explanation aggregates used by stats and
// the badge rule engine.
type UserAggregates struct {
	ExplanationsCount int64
	AverageScore      float64
	TotalXPEarned     int64
	UpvotesReceived   int64
	SubjectsExplained int64
}

// ExplanationRepository defines data operations for explanations.
type ExplanationRepository interface {
	Create(ctx context.Context, explanation *models.Explanation) error
	GetByID(ctx context.Context, id uint) (models.Explanation, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Explanation, error)
	ListPublic(ctx context.Context, limit int) ([]models.Explanation, error)
	AggregatesByUser(ctx context.Context, userID uint) (UserAggregates, error)
}

type explanationRepository struct {
	db *gorm.DB
}

// NewExplanationRepository instantiates the repository.
func NewExplanationRepository(db *gorm.DB) ExplanationRepository {
	return &explanationRepository{db: db}
}

func (r *explanationRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Explanation{}).
		Preload("User").
		Preload("Topic")
}

func (r *explanationRepository) Create(ctx context.Context, explanation *models.Explanation) error {
	return r.db.WithContext(ctx).Create(explanation).Error
}

func (r *explanationRepository) GetByID(ctx context.Context, id uint) (models.Explanation, error) {
	var explanation models.Explanation
	if err := r.baseQuery(ctx).First(&explanation, id).Error; err != nil {
		return models.Explanation{}, err
	}
	return explanation, nil
}

func (r *explanationRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Explanation, error) {
	if limit <= 0 {
		limit = 10
	}

	var explanations []models.Explanation
	if err := r.baseQuery(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&explanations).Error; err != nil {
		return nil, err
	}
	return explanations, nil
}

func (r *explanationRepository) ListPublic(ctx context.Context, limit int) ([]models.Explanation, error) {
	if limit <= 0 {
		limit = 20
	}

	var explanations []models.Explanation
	if err := r.baseQuery(ctx).
		Where("is_public = ?", true).
		Order("score DESC, created_at DESC").
		Limit(limit).
		Find(&explanations).Error; err != nil {
		return nil, err
	}
	return explanations, nil
}

func (r *explanationRepository) AggregatesByUser(ctx context.Context, userID uint) (UserAggregates, error) {
	var row struct {
		ExplanationsCount int64
		AverageScore      *float64
		TotalXPEarned     *int64
		UpvotesReceived   *int64
	}

	if err := r.db.WithContext(ctx).Model(&models.Explanation{}).
		Select("COUNT(*) AS explanations_count, AVG(score) AS average_score, SUM(xp_earned) AS total_xp_earned, SUM(upvotes) AS upvotes_received").
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return UserAggregates{}, err
	}

	var subjects int64
	if err := r.db.WithContext(ctx).Model(&models.Explanation{}).
		Joins("JOIN topics ON topics.id = explanations.topic_id").
		Where("explanations.user_id = ?", userID).
		Distinct("topics.subject").
		Count(&subjects).Error; err != nil {
		return UserAggregates{}, err
	}

	aggregates := UserAggregates{
		ExplanationsCount: row.ExplanationsCount,
		SubjectsExplained: subjects,
	}
	if row.AverageScore != nil {
		aggregates.AverageScore = *row.AverageScore
	}
	if row.TotalXPEarned != nil {
		aggregates.TotalXPEarned = *row.TotalXPEarned
	}
	if row.UpvotesReceived != nil {
		aggregates.UpvotesReceived = *row.UpvotesReceived
	}

	return aggregates, nil
}
