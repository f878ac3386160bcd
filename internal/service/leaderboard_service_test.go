package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teachback-api/internal/models"
)

func TestLeaderboardServiceOrdersByXP(t *testing.T) {
	users := newUserRepoStub(
		models.User{ID: 1, Username: "jane", TotalXP: 500, Level: 1},
		models.User{ID: 2, Username: "amir", TotalXP: 2500, Level: 3},
		models.User{ID: 3, Username: "lucia", TotalXP: 1200, Level: 2},
	)
	svc := NewLeaderboardService(users, nil, time.Minute, testLogger())

	entries, err := svc.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "amir", entries[0].Username)
	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, "lucia", entries[1].Username)
	require.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardServiceServesFromCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	users := newUserRepoStub(models.User{ID: 1, Username: "jane", TotalXP: 500, Level: 1})
	svc := NewLeaderboardService(users, cache, time.Minute, testLogger())

	first, err := svc.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A ranking change invisible to the cache: the cached copy is served
	// until the TTL expires.
	users.users[2] = models.User{ID: 2, Username: "amir", TotalXP: 9999, Level: 10}

	cached, err := svc.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, "jane", cached[0].Username)

	server.FastForward(2 * time.Minute)

	refreshed, err := svc.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, refreshed, 2)
	require.Equal(t, "amir", refreshed[0].Username)
}
