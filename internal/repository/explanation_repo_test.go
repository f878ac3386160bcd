package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
)

func createTestTopic(t *testing.T, db *gorm.DB, title, subject string, reward int) models.Topic {
	t.Helper()

	topic := models.Topic{Title: title, Description: "d", Subject: subject, Difficulty: models.DifficultyMedium, XPReward: reward}
	require.NoError(t, db.Create(&topic).Error)
	return topic
}

func createTestExplanation(t *testing.T, db *gorm.DB, userID, topicID uint, score, xp, upvotes int, public bool) models.Explanation {
	t.Helper()

	explanation := models.Explanation{
		UserID:       userID,
		TopicID:      topicID,
		Type:         models.ExplanationTypeText,
		Content:      "An explanation long enough to have been accepted by the pipeline.",
		FeedbackMode: "encouraging",
		Score:        score,
		XPEarned:     xp,
		Upvotes:      upvotes,
		IsPublic:     public,
	}
	require.NoError(t, db.Create(&explanation).Error)
	return explanation
}

func TestExplanationRepositoryAggregatesByUser(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{})
	repo := NewExplanationRepository(db)

	user := createTestUser(t, db, "jane", 0)
	biology := createTestTopic(t, db, "Photosynthesis Process", "biology", 75)
	maths := createTestTopic(t, db, "Quadratic Equations", "mathematics", 80)

	createTestExplanation(t, db, user.ID, biology.ID, 80, 60, 3, true)
	createTestExplanation(t, db, user.ID, maths.ID, 90, 72, 2, true)

	aggregates, err := repo.AggregatesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), aggregates.ExplanationsCount)
	require.InDelta(t, 85.0, aggregates.AverageScore, 0.001)
	require.Equal(t, int64(132), aggregates.TotalXPEarned)
	require.Equal(t, int64(5), aggregates.UpvotesReceived)
	require.Equal(t, int64(2), aggregates.SubjectsExplained)
}

func TestExplanationRepositoryAggregatesEmptyUser(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{})
	repo := NewExplanationRepository(db)

	user := createTestUser(t, db, "jane", 0)

	aggregates, err := repo.AggregatesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, aggregates.ExplanationsCount)
	require.Zero(t, aggregates.AverageScore)
	require.Zero(t, aggregates.TotalXPEarned)
}

func TestExplanationRepositoryListPublicExcludesPrivate(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{})
	repo := NewExplanationRepository(db)

	user := createTestUser(t, db, "jane", 0)
	topic := createTestTopic(t, db, "Newton's Laws of Motion", "physics", 75)

	createTestExplanation(t, db, user.ID, topic.ID, 70, 50, 0, true)
	best := createTestExplanation(t, db, user.ID, topic.ID, 95, 71, 0, true)
	createTestExplanation(t, db, user.ID, topic.ID, 99, 74, 0, false)

	public, err := repo.ListPublic(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, public, 2)
	require.Equal(t, best.ID, public[0].ID, "ordered by score first")
	require.Equal(t, "jane", public[0].User.Username, "author preloaded")
	require.Equal(t, "physics", public[0].Topic.Subject, "topic preloaded")
}

func TestTopicRepositoryListUnexplained(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Topic{}, &models.Explanation{})
	topics := NewTopicRepository(db)

	user := createTestUser(t, db, "jane", 0)
	explained := createTestTopic(t, db, "Calculus Integration", "mathematics", 90)
	fresh := createTestTopic(t, db, "World War II Causes", "history", 55)

	createTestExplanation(t, db, user.ID, explained.ID, 80, 72, 0, true)

	recommended, err := topics.ListUnexplained(context.Background(), user.ID, 4)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	require.Equal(t, fresh.ID, recommended[0].ID)
}
