package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
)

func voteTestFixtures(t *testing.T, db *gorm.DB) (models.User, models.Explanation) {
	t.Helper()

	user := createTestUser(t, db, "voter", 0)
	author := createTestUser(t, db, "author", 0)
	topic := models.Topic{Title: "Chemical Bonding", Description: "d", Subject: "chemistry", Difficulty: models.DifficultyEasy, XPReward: 60}
	require.NoError(t, db.Create(&topic).Error)

	explanation := models.Explanation{
		UserID:       author.ID,
		TopicID:      topic.ID,
		Type:         models.ExplanationTypeText,
		Content:      "Atoms share or transfer electrons to form bonds.",
		FeedbackMode: "professional",
		Score:        80,
		IsPublic:     true,
	}
	require.NoError(t, db.Create(&explanation).Error)

	return user, explanation
}

func TestVoteRepositoryCastUpdatesCounters(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{}, &models.Vote{})
	repo := NewVoteRepository(db)
	user, explanation := voteTestFixtures(t, db)

	vote := models.Vote{UserID: user.ID, ExplanationID: explanation.ID, IsUpvote: true}
	require.NoError(t, repo.Cast(context.Background(), &vote))

	var stored models.Explanation
	require.NoError(t, db.First(&stored, explanation.ID).Error)
	require.Equal(t, 1, stored.Upvotes)
	require.Equal(t, 0, stored.Downvotes)
}

func TestVoteRepositoryChangeDirectionRecounts(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{}, &models.Vote{})
	repo := NewVoteRepository(db)
	user, explanation := voteTestFixtures(t, db)

	vote := models.Vote{UserID: user.ID, ExplanationID: explanation.ID, IsUpvote: true}
	require.NoError(t, repo.Cast(context.Background(), &vote))
	require.NoError(t, repo.ChangeDirection(context.Background(), user.ID, explanation.ID, false))

	var stored models.Explanation
	require.NoError(t, db.First(&stored, explanation.ID).Error)
	require.Equal(t, 0, stored.Upvotes)
	require.Equal(t, 1, stored.Downvotes)

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).Where("user_id = ?", user.ID).Count(&rows).Error)
	require.Equal(t, int64(1), rows, "direction change must update, not insert")
}

func TestVoteRepositoryDuplicateInsertRejectedByUniqueIndex(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{}, &models.Vote{})
	repo := NewVoteRepository(db)
	user, explanation := voteTestFixtures(t, db)

	first := models.Vote{UserID: user.ID, ExplanationID: explanation.ID, IsUpvote: true}
	require.NoError(t, repo.Cast(context.Background(), &first))

	second := models.Vote{UserID: user.ID, ExplanationID: explanation.ID, IsUpvote: false}
	require.Error(t, repo.Cast(context.Background(), &second))
}

func TestVoteRepositoryChangeDirectionUnknownVote(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{}, &models.Vote{})
	repo := NewVoteRepository(db)
	user, explanation := voteTestFixtures(t, db)

	err := repo.ChangeDirection(context.Background(), user.ID, explanation.ID, true)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
