package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedServiceRequiresToken(t *testing.T) {
	svc := NewSeedService(newTopicRepoStub(), newBadgeRepoStub(), true, "sekrit", testLogger())

	_, err := svc.SeedTopics(context.Background(), "wrong", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	affected, err := svc.SeedTopics(context.Background(), "sekrit", nil)
	require.NoError(t, err)
	require.Equal(t, int64(len(DefaultTopics())), affected)
}

func TestSeedServiceDisabled(t *testing.T) {
	svc := NewSeedService(newTopicRepoStub(), newBadgeRepoStub(), false, "sekrit", testLogger())

	_, err := svc.SeedBadges(context.Background(), "sekrit", nil)
	require.ErrorIs(t, err, ErrSeedDisabled)
}

func TestSeedServiceEmptyTokenNeverMatches(t *testing.T) {
	svc := NewSeedService(newTopicRepoStub(), newBadgeRepoStub(), true, "", testLogger())

	_, err := svc.SeedBadges(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedServiceSeedsDefaultBadges(t *testing.T) {
	badges := newBadgeRepoStub()
	svc := NewSeedService(newTopicRepoStub(), badges, true, "sekrit", testLogger())

	affected, err := svc.SeedBadges(context.Background(), "sekrit", nil)
	require.NoError(t, err)
	require.Equal(t, int64(len(DefaultBadges())), affected)

	catalog, err := badges.ListCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, len(DefaultBadges()))
}
