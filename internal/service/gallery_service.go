package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/observability"
	"github.com/noah-isme/teachback-api/internal/repository"
)

const galleryLimit = 20

// GalleryService exposes the public gallery of top-scored explanations.
type GalleryService interface {
	List(ctx context.Context) ([]dto.ExplanationResponse, error)
}

type galleryService struct {
	explanations repository.ExplanationRepository
	logger       zerolog.Logger
}

// NewGalleryService constructs the gallery service.
func NewGalleryService(explanations repository.ExplanationRepository, logger zerolog.Logger) GalleryService {
	return &galleryService{
		explanations: explanations,
		logger:       logger.With().Str("component", "gallery_service").Logger(),
	}
}

func (s *galleryService) List(ctx context.Context) ([]dto.ExplanationResponse, error) {
	start := time.Now()
	defer func() {
		observability.GalleryLatency().Observe(time.Since(start).Seconds())
	}()

	explanations, err := s.explanations.ListPublic(ctx, galleryLimit)
	if err != nil {
		return nil, err
	}

	return dto.NewExplanationResponseSlice(explanations), nil
}
