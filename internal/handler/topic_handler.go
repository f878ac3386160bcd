package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/teachback-api/internal/service"
	"github.com/noah-isme/teachback-api/internal/utils"
)

// TopicHandler manages topic catalog endpoints.
type TopicHandler struct {
	service service.TopicService
	logger  zerolog.Logger
}

// NewTopicHandler builds a topic handler instance.
func NewTopicHandler(service service.TopicService, logger zerolog.Logger) *TopicHandler {
	return &TopicHandler{
		service: service,
		logger:  logger.With().Str("component", "topic_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *TopicHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/recommended", h.recommended)
	router.Get("/:id", h.get)
}

func (h *TopicHandler) list(c *fiber.Ctx) error {
	topics, err := h.service.List(c.Context(), c.Query("subject"), c.Query("difficulty"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "topics retrieved", topics)
}

func (h *TopicHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid topic id")
	}

	topic, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "topic retrieved", topic)
}

func (h *TopicHandler) recommended(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	topics, err := h.service.Recommended(c.Context(), userID, limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "recommended topics retrieved", topics)
}

func (h *TopicHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "topic not found")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
