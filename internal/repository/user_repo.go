package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
)

// UserRepository defines data operations for user accounts and their
// gamification aggregates.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	AddXP(ctx context.Context, id uint, earned int) (models.User, error)
	UpdateActivity(ctx context.Context, id uint, streak int, lastActive time.Time) (models.User, error)
	Leaderboard(ctx context.Context, limit int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates the repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// AddXP applies earned XP as a single atomic UPDATE. The level is derived
// from the incremented total inside the same statement, so concurrent
// submissions cannot lose an increment or leave level out of sync with XP.
func (r *userRepository) AddXP(ctx context.Context, id uint, earned int) (models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_xp": gorm.Expr("total_xp + ?", earned),
		"level":    gorm.Expr("(total_xp + ?) / 1000 + 1", earned),
	})
	if result.Error != nil {
		return models.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) UpdateActivity(ctx context.Context, id uint, streak int, lastActive time.Time) (models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"streak":         streak,
		"last_active_at": lastActive,
	})
	if result.Error != nil {
		return models.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 10
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("total_xp DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
