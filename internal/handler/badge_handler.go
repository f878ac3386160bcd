package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/teachback-api/internal/service"
	"github.com/noah-isme/teachback-api/internal/utils"
)

// BadgeHandler serves the badge catalog and earned badges.
type BadgeHandler struct {
	service service.BadgeService
	logger  zerolog.Logger
}

// NewBadgeHandler builds a badge handler instance.
func NewBadgeHandler(service service.BadgeService, logger zerolog.Logger) *BadgeHandler {
	return &BadgeHandler{
		service: service,
		logger:  logger.With().Str("component", "badge_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *BadgeHandler) Register(router fiber.Router) {
	router.Get("", h.catalog)
	router.Get("/earned", h.earned)
}

func (h *BadgeHandler) catalog(c *fiber.Ctx) error {
	catalog, err := h.service.Catalog(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "badges retrieved", catalog)
}

func (h *BadgeHandler) earned(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	earned, err := h.service.Earned(c.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "earned badges retrieved", earned)
}
