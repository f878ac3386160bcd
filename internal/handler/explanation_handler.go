package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/service"
	"github.com/noah-isme/teachback-api/internal/utils"
)

// ExplanationHandler manages explanation submission, retrieval and voting.
type ExplanationHandler struct {
	explanations service.ExplanationService
	votes        service.VoteService
	logger       zerolog.Logger
}

// NewExplanationHandler builds an explanation handler instance.
func NewExplanationHandler(explanations service.ExplanationService, votes service.VoteService, logger zerolog.Logger) *ExplanationHandler {
	return &ExplanationHandler{
		explanations: explanations,
		votes:        votes,
		logger:       logger.With().Str("component", "explanation_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ExplanationHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("/mine", h.mine)
	router.Get("/:id", h.get)
	router.Post("/:id/vote", h.vote)
}

func (h *ExplanationHandler) submit(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.SubmitExplanationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.TopicID == 0 {
		if parsed, err := strconv.ParseUint(c.FormValue("topic_id"), 10, 64); err == nil {
			payload.TopicID = uint(parsed)
		}
	}

	// Media submissions arrive as multipart; the file part is optional for text.
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	result, err := h.explanations.Submit(c.Context(), userID, payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "explanation submitted", result)
}

func (h *ExplanationHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid explanation id")
	}

	explanation, err := h.explanations.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "explanation retrieved", explanation)
}

func (h *ExplanationHandler) mine(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	explanations, err := h.explanations.ListByUser(c.Context(), userID, limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "explanations retrieved", explanations)
}

func (h *ExplanationHandler) vote(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid explanation id")
	}

	var payload dto.VoteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.IsUpvote == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "is_upvote is required")
	}

	explanation, err := h.votes.Vote(c.Context(), userID, id, *payload.IsUpvote)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "vote recorded", explanation)
}

func (h *ExplanationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "topic not found")
	case errors.Is(err, service.ErrExplanationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "explanation not found")
	case errors.Is(err, service.ErrContentTooShort):
		return utils.SendError(c, fiber.StatusBadRequest, "explanation must be at least 50 characters")
	case errors.Is(err, service.ErrMediaRequired):
		return utils.SendError(c, fiber.StatusBadRequest, "media file is required for this submission type")
	case errors.Is(err, service.ErrMediaTypeNotAllowed):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, "media file type not allowed")
	case errors.Is(err, service.ErrTranscriptionFailed):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "audio could not be transcribed")
	case errors.Is(err, service.ErrAlreadyVoted):
		return utils.SendError(c, fiber.StatusConflict, "vote already recorded")
	case errors.Is(err, service.ErrSelfVote):
		return utils.SendError(c, fiber.StatusForbidden, "cannot vote on your own explanation")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
