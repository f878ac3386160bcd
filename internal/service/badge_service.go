package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/repository"
)

// BadgeService exposes the badge catalog and a user's earned badges.
type BadgeService interface {
	Catalog(ctx context.Context) ([]dto.BadgeResponse, error)
	Earned(ctx context.Context, userID uint) ([]dto.UserBadgeResponse, error)
}

type badgeService struct {
	badges repository.BadgeRepository
	logger zerolog.Logger
}

// NewBadgeService constructs a BadgeService instance.
func NewBadgeService(badges repository.BadgeRepository, logger zerolog.Logger) BadgeService {
	return &badgeService{
		badges: badges,
		logger: logger.With().Str("component", "badge_service").Logger(),
	}
}

func (s *badgeService) Catalog(ctx context.Context) ([]dto.BadgeResponse, error) {
	catalog, err := s.badges.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewBadgeResponseSlice(catalog), nil
}

func (s *badgeService) Earned(ctx context.Context, userID uint) ([]dto.UserBadgeResponse, error) {
	earned, err := s.badges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserBadgeResponseSlice(earned), nil
}
