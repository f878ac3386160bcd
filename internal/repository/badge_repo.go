package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/teachback-api/internal/models"
)

// BadgeRepository defines data operations for the badge catalog and awards.
type BadgeRepository interface {
	ListCatalog(ctx context.Context) ([]models.Badge, error)
	ListByUser(ctx context.Context, userID uint) ([]models.UserBadge, error)
	EarnedIDs(ctx context.Context, userID uint) (map[uint]bool, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Award(ctx context.Context, userID, badgeID uint) (bool, error)
	UpsertCatalog(ctx context.Context, badges []models.Badge) (int64, error)
}

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository instantiates the repository.
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) ListCatalog(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) ListByUser(ctx context.Context, userID uint) ([]models.UserBadge, error) {
	var awards []models.UserBadge
	if err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&awards).Error; err != nil {
		return nil, err
	}
	return awards, nil
}

func (r *badgeRepository) EarnedIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}

	earned := make(map[uint]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

func (r *badgeRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Award inserts the (user, badge) pair, ignoring conflicts with the unique
// index so repeated engine runs stay idempotent. Returns whether a new row
// was written.
func (r *badgeRepository) Award(ctx context.Context, userID, badgeID uint) (bool, error) {
	award := models.UserBadge{UserID: userID, BadgeID: badgeID}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&award)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *badgeRepository) UpsertCatalog(ctx context.Context, badges []models.Badge) (int64, error) {
	if len(badges) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "icon", "color", "criteria"}),
	}).Create(&badges)

	return result.RowsAffected, result.Error
}
