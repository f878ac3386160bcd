package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/observability"
	"github.com/noah-isme/teachback-api/internal/repository"
)

const defaultLeaderboardLimit = 10

// LeaderboardService serves the XP ranking with a short-lived cache in front
// of the database.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewLeaderboardService constructs a LeaderboardService instance. A nil cache
// client disables caching.
func NewLeaderboardService(users repository.UserRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		users:    users,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

func (s *leaderboardService) Top(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var entries []dto.LeaderboardEntry
			if unmarshalErr := json.Unmarshal([]byte(cached), &entries); unmarshalErr == nil {
				observability.LeaderboardCacheEvents().WithLabelValues("hit").Inc()
				return entries, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	users, err := s.users.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := dto.NewLeaderboardEntries(users)
	observability.LeaderboardCacheEvents().WithLabelValues("miss").Inc()

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return entries, nil
}
