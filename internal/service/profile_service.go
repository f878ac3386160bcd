package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/repository"
)

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

const (
	recentBadgesLimit   = 3
	recentActivityLimit = 10
)

// ProfileService assembles the profile view: account, aggregate stats,
// latest badges and recent explanations.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	GetStats(ctx context.Context, userID uint) (dto.StatsResponse, error)
	RecentActivity(ctx context.Context, userID uint, limit int) ([]dto.ExplanationResponse, error)
	EarnedBadges(ctx context.Context, userID uint) ([]dto.UserBadgeResponse, error)
}

type profileService struct {
	users        repository.UserRepository
	explanations repository.ExplanationRepository
	badges       repository.BadgeRepository
	logger       zerolog.Logger
}

// NewProfileService constructs a ProfileService instance.
func NewProfileService(users repository.UserRepository, explanations repository.ExplanationRepository, badges repository.BadgeRepository, logger zerolog.Logger) ProfileService {
	return &profileService{
		users:        users,
		explanations: explanations,
		badges:       badges,
		logger:       logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	stats, err := s.GetStats(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	earned, err := s.badges.ListByUser(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	if len(earned) > recentBadgesLimit {
		earned = earned[:recentBadgesLimit]
	}

	activity, err := s.explanations.ListByUser(ctx, userID, recentActivityLimit)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.ProfileResponse{
		User:           dto.NewUserResponse(user),
		Stats:          stats,
		RecentBadges:   dto.NewUserBadgeResponseSlice(earned),
		RecentActivity: dto.NewExplanationResponseSlice(activity),
	}, nil
}

func (s *profileService) RecentActivity(ctx context.Context, userID uint, limit int) ([]dto.ExplanationResponse, error) {
	if limit <= 0 {
		limit = recentActivityLimit
	}
	activity, err := s.explanations.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewExplanationResponseSlice(activity), nil
}

func (s *profileService) EarnedBadges(ctx context.Context, userID uint) ([]dto.UserBadgeResponse, error) {
	earned, err := s.badges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserBadgeResponseSlice(earned), nil
}

func (s *profileService) GetStats(ctx context.Context, userID uint) (dto.StatsResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StatsResponse{}, ErrUserNotFound
		}
		return dto.StatsResponse{}, err
	}

	aggregates, err := s.explanations.AggregatesByUser(ctx, userID)
	if err != nil {
		return dto.StatsResponse{}, err
	}

	badgesCount, err := s.badges.CountByUser(ctx, userID)
	if err != nil {
		return dto.StatsResponse{}, err
	}

	return dto.StatsResponse{
		ExplanationsCount: aggregates.ExplanationsCount,
		AverageScore:      math.Round(aggregates.AverageScore*100) / 100,
		TotalXP:           user.TotalXP,
		Level:             user.Level,
		Streak:            user.Streak,
		BadgesCount:       badgesCount,
		UpvotesReceived:   aggregates.UpvotesReceived,
		SubjectsExplained: aggregates.SubjectsExplained,
	}, nil
}
