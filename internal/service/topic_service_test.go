package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teachback-api/internal/models"
)

func topicCatalog() []models.Topic {
	return []models.Topic{
		{ID: 1, Title: "Photosynthesis Process", Subject: "biology", Difficulty: models.DifficultyMedium, XPReward: 75},
		{ID: 2, Title: "Quadratic Equations", Subject: "mathematics", Difficulty: models.DifficultyMedium, XPReward: 80},
		{ID: 3, Title: "Calculus Integration", Subject: "mathematics", Difficulty: models.DifficultyHard, XPReward: 90},
	}
}

func TestTopicServiceListFilters(t *testing.T) {
	svc := NewTopicService(newTopicRepoStub(topicCatalog()...), testLogger())

	all, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	math, err := svc.List(context.Background(), "Mathematics", "")
	require.NoError(t, err)
	require.Len(t, math, 2)

	hard, err := svc.List(context.Background(), "mathematics", "hard")
	require.NoError(t, err)
	require.Len(t, hard, 1)
	require.Equal(t, "Calculus Integration", hard[0].Title)
}

func TestTopicServiceGetUnknown(t *testing.T) {
	svc := NewTopicService(newTopicRepoStub(), testLogger())

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrTopicNotFound)
}

func TestTopicServiceRecommendedDefaultsLimit(t *testing.T) {
	topics := newTopicRepoStub(topicCatalog()...)
	svc := NewTopicService(topics, testLogger())

	recommended, err := svc.Recommended(context.Background(), 1, 0)
	require.NoError(t, err)
	require.NotEmpty(t, recommended)
}
