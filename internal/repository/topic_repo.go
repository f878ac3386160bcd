package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/teachback-api/internal/models"
)

// TopicRepository defines data operations for the topic catalog.
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
	GetByID(ctx context.Context, id uint) (models.Topic, error)
	ListUnexplained(ctx context.Context, userID uint, limit int) ([]models.Topic, error)
	UpsertBatch(ctx context.Context, topics []models.Topic) (int64, error)
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository instantiates the repository.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) List(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepository) GetByID(ctx context.Context, id uint) (models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		return models.Topic{}, err
	}
	return topic, nil
}

// ListUnexplained returns topics the user has not submitted an explanation
// for yet, used for recommendations.
func (r *topicRepository) ListUnexplained(ctx context.Context, userID uint, limit int) ([]models.Topic, error) {
	if limit <= 0 {
		limit = 4
	}

	explained := r.db.Model(&models.Explanation{}).
		Select("topic_id").
		Where("user_id = ?", userID)

	var topics []models.Topic
	if err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", explained).
		Order("title ASC").
		Limit(limit).
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepository) UpsertBatch(ctx context.Context, topics []models.Topic) (int64, error) {
	if len(topics) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "subject", "difficulty", "xp_reward", "estimated_minutes"}),
	}).Create(&topics)

	return result.RowsAffected, result.Error
}
