package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/teachback-api/internal/service"
	"github.com/noah-isme/teachback-api/internal/utils"
)

// GalleryHandler serves the public gallery of top explanations.
type GalleryHandler struct {
	service service.GalleryService
	logger  zerolog.Logger
}

// NewGalleryHandler builds a gallery handler instance.
func NewGalleryHandler(service service.GalleryService, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: service,
		logger:  logger.With().Str("component", "gallery_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *GalleryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *GalleryHandler) list(c *fiber.Ctx) error {
	explanations, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "gallery retrieved", explanations)
}
