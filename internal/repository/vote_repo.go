package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
)

// VoteRepository defines data operations for votes. Writes recount the
// explanation counters inside the same transaction as the vote row, so the
// counters never drift from the votes table.
type VoteRepository interface {
	GetByUserAndExplanation(ctx context.Context, userID, explanationID uint) (models.Vote, error)
	Cast(ctx context.Context, vote *models.Vote) error
	ChangeDirection(ctx context.Context, userID, explanationID uint, isUpvote bool) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository instantiates the repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) GetByUserAndExplanation(ctx context.Context, userID, explanationID uint) (models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND explanation_id = ?", userID, explanationID).
		First(&vote).Error; err != nil {
		return models.Vote{}, err
	}
	return vote, nil
}

func (r *voteRepository) Cast(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		return recountVotes(tx, vote.ExplanationID)
	})
}

func (r *voteRepository) ChangeDirection(ctx context.Context, userID, explanationID uint, isUpvote bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Vote{}).
			Where("user_id = ? AND explanation_id = ?", userID, explanationID).
			Update("is_upvote", isUpvote)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recountVotes(tx, explanationID)
	})
}

func recountVotes(tx *gorm.DB, explanationID uint) error {
	var counts struct {
		Upvotes   int64
		Downvotes int64
	}

	if err := tx.Model(&models.Vote{}).
		Select("SUM(CASE WHEN is_upvote THEN 1 ELSE 0 END) AS upvotes, SUM(CASE WHEN is_upvote THEN 0 ELSE 1 END) AS downvotes").
		Where("explanation_id = ?", explanationID).
		Scan(&counts).Error; err != nil {
		return err
	}

	return tx.Model(&models.Explanation{}).
		Where("id = ?", explanationID).
		Updates(map[string]interface{}{
			"upvotes":   counts.Upvotes,
			"downvotes": counts.Downvotes,
		}).Error
}
