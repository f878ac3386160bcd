package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teachback-api/internal/models"
)

func TestProfileServiceStats(t *testing.T) {
	users := newUserRepoStub(models.User{ID: 1, Username: "jane", TotalXP: 1200, Level: 2, Streak: 4})
	explanations := newExplanationRepoStub()
	badges := newBadgeRepoStub(models.Badge{ID: 1, Name: "First Steps"})

	require.NoError(t, explanations.Create(context.Background(), &models.Explanation{UserID: 1, TopicID: 1, Score: 80, XPEarned: 60, Upvotes: 3}))
	require.NoError(t, explanations.Create(context.Background(), &models.Explanation{UserID: 1, TopicID: 2, Score: 91, XPEarned: 70, Upvotes: 1}))

	awarded, err := badges.Award(context.Background(), 1, 1)
	require.NoError(t, err)
	require.True(t, awarded)

	svc := NewProfileService(users, explanations, badges, testLogger())

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.ExplanationsCount)
	require.Equal(t, 85.5, stats.AverageScore)
	require.Equal(t, 1200, stats.TotalXP)
	require.Equal(t, int64(1), stats.BadgesCount)
	require.Equal(t, int64(4), stats.UpvotesReceived)
	require.Equal(t, int64(2), stats.SubjectsExplained)
}

func TestProfileServiceProfileIncludesBadgesAndActivity(t *testing.T) {
	users := newUserRepoStub(models.User{ID: 1, Username: "jane", Level: 1})
	explanations := newExplanationRepoStub()
	badges := newBadgeRepoStub(models.Badge{ID: 1, Name: "First Steps"})

	require.NoError(t, explanations.Create(context.Background(), &models.Explanation{UserID: 1, TopicID: 1, Score: 75}))
	_, err := badges.Award(context.Background(), 1, 1)
	require.NoError(t, err)

	svc := NewProfileService(users, explanations, badges, testLogger())

	profile, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "jane", profile.User.Username)
	require.Len(t, profile.RecentBadges, 1)
	require.Len(t, profile.RecentActivity, 1)

	activity, err := svc.RecentActivity(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, activity, 1)

	earned, err := svc.EarnedBadges(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	require.Equal(t, "First Steps", earned[0].Badge.Name)
}

func TestProfileServiceUnknownUser(t *testing.T) {
	svc := NewProfileService(newUserRepoStub(), newExplanationRepoStub(), newBadgeRepoStub(), testLogger())

	_, err := svc.GetProfile(context.Background(), 42)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetStats(context.Background(), 42)
	require.ErrorIs(t, err, ErrUserNotFound)
}
