package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/gamification"
	"github.com/noah-isme/teachback-api/internal/models"
	"github.com/noah-isme/teachback-api/internal/observability"
	"github.com/noah-isme/teachback-api/internal/repository"
	"github.com/noah-isme/teachback-api/pkg/ai"
)

var (
	// ErrTopicNotFound indicates the referenced topic does not exist.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrExplanationNotFound indicates the explanation could not be found.
	ErrExplanationNotFound = errors.New("explanation not found")
	// ErrContentTooShort indicates the explanation text is below the minimum length.
	ErrContentTooShort = errors.New("explanation must be at least 50 characters")
	// ErrMediaRequired indicates an audio or video submission arrived without a file.
	ErrMediaRequired = errors.New("media file is required for this submission type")
	// ErrMediaTypeNotAllowed indicates the uploaded file does not match the submission type.
	ErrMediaTypeNotAllowed = errors.New("media file type not allowed")
	// ErrTranscriptionFailed indicates the audio could not be transcribed.
	ErrTranscriptionFailed = errors.New("audio transcription failed")
)

const minContentLength = 50

// FileStorage abstracts upload destinations for submission media.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// Notifier delivers progression events to the user's notification feed.
// A nil notifier disables delivery without affecting the pipeline.
type Notifier interface {
	Notify(ctx context.Context, userID uint, notificationType, message string)
}

// ExplanationService orchestrates the submission pipeline: validation,
// media handling, scoring, and the transactional progression update.
type ExplanationService interface {
	Submit(ctx context.Context, userID uint, payload dto.SubmitExplanationRequest, file *multipart.FileHeader) (dto.SubmissionResult, error)
	Get(ctx context.Context, id uint) (dto.ExplanationResponse, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]dto.ExplanationResponse, error)
}

type explanationService struct {
	uow          repository.UnitOfWork
	users        repository.UserRepository
	topics       repository.TopicRepository
	explanations repository.ExplanationRepository
	evaluator    ai.Evaluator
	fallback     ai.Evaluator
	transcriber  ai.Transcriber
	storage      FileStorage
	notifier     Notifier
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

// NewExplanationService constructs the submission pipeline service. The
// fallback evaluator is used when the primary evaluator fails, so scoring
// never blocks a submission.
func NewExplanationService(
	uow repository.UnitOfWork,
	users repository.UserRepository,
	topics repository.TopicRepository,
	explanations repository.ExplanationRepository,
	evaluator ai.Evaluator,
	fallback ai.Evaluator,
	transcriber ai.Transcriber,
	storage FileStorage,
	notifier Notifier,
	validate *validator.Validate,
	logger zerolog.Logger,
) ExplanationService {
	return &explanationService{
		uow:          uow,
		users:        users,
		topics:       topics,
		explanations: explanations,
		evaluator:    evaluator,
		fallback:     fallback,
		transcriber:  transcriber,
		storage:      storage,
		notifier:     notifier,
		validator:    validate,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "explanation_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/teachback-api/internal/service/explanation"),
		now:          time.Now,
	}
}

func (s *explanationService) Submit(ctx context.Context, userID uint, payload dto.SubmitExplanationRequest, file *multipart.FileHeader) (dto.SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "explanations.submit", trace.WithAttributes(
		attribute.Int("submission.user_id", int(userID)),
		attribute.Int("submission.topic_id", int(payload.TopicID)),
		attribute.String("submission.type", payload.Type),
	))
	defer span.End()

	start := s.now()
	defer func() {
		observability.SubmissionLatency().Observe(time.Since(start).Seconds())
	}()

	if err := s.validator.Struct(payload); err != nil {
		observability.SubmissionsTotal().WithLabelValues(payload.Type, "rejected").Inc()
		return dto.SubmissionResult{}, err
	}

	mode := payload.FeedbackMode
	if mode == "" {
		mode = ai.ModeEncouraging
	}

	topic, err := s.topics.GetByID(ctx, payload.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.SubmissionsTotal().WithLabelValues(payload.Type, "rejected").Inc()
			return dto.SubmissionResult{}, ErrTopicNotFound
		}
		return dto.SubmissionResult{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return dto.SubmissionResult{}, err
	}

	content, fileURL, err := s.prepareContent(ctx, payload, file)
	if err != nil {
		observability.SubmissionsTotal().WithLabelValues(payload.Type, "rejected").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "content preparation failed")
		return dto.SubmissionResult{}, err
	}

	evaluation := s.evaluate(ctx, ai.EvaluationInput{
		Text:       content,
		TopicTitle: topic.Title,
		Mode:       mode,
	})

	xpEarned := gamification.XPForScore(topic.XPReward, evaluation.Score)

	isPublic := true
	if payload.IsPublic != nil {
		isPublic = *payload.IsPublic
	}

	var (
		created     models.Explanation
		updatedUser models.User
		newBadges   []models.Badge
	)

	err = s.uow.Do(ctx, func(tx repository.Set) error {
		explanation := models.Explanation{
			UserID:       userID,
			TopicID:      topic.ID,
			Type:         payload.Type,
			Content:      content,
			FileURL:      fileURL,
			FeedbackMode: mode,
			Score:        evaluation.Score,
			Evaluation:   evaluation.ToMap(),
			XPEarned:     xpEarned,
			IsPublic:     isPublic,
		}
		if err := tx.Explanations.Create(ctx, &explanation); err != nil {
			return err
		}

		// The streak is a login-time concern; submissions only move XP and level.
		after, err := tx.Users.AddXP(ctx, userID, xpEarned)
		if err != nil {
			return err
		}

		aggregates, err := tx.Explanations.AggregatesByUser(ctx, userID)
		if err != nil {
			return err
		}
		catalog, err := tx.Badges.ListCatalog(ctx)
		if err != nil {
			return err
		}
		earned, err := tx.Badges.EarnedIDs(ctx, userID)
		if err != nil {
			return err
		}

		stats := gamification.Stats{
			ExplanationsCount: int(aggregates.ExplanationsCount),
			AverageScore:      int(math.Round(aggregates.AverageScore)),
			Streak:            after.Streak,
			Level:             after.Level,
			UpvotesReceived:   int(aggregates.UpvotesReceived),
			SubjectsExplained: int(aggregates.SubjectsExplained),
		}

		for _, badge := range gamification.EligibleBadges(stats, catalog, earned) {
			awarded, err := tx.Badges.Award(ctx, userID, badge.ID)
			if err != nil {
				return err
			}
			if awarded {
				newBadges = append(newBadges, badge)
			}
		}

		created = explanation
		updatedUser = after
		return nil
	})
	if err != nil {
		observability.SubmissionsTotal().WithLabelValues(payload.Type, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "progression transaction failed")
		return dto.SubmissionResult{}, err
	}

	leveledUp := updatedUser.Level > user.Level
	s.announce(ctx, userID, updatedUser.Level, leveledUp, newBadges)

	observability.SubmissionsTotal().WithLabelValues(payload.Type, "accepted").Inc()
	if len(newBadges) > 0 {
		observability.BadgesAwardedTotal().Add(float64(len(newBadges)))
	}

	s.logger.Info().
		Uint("user_id", userID).
		Uint("explanation_id", created.ID).
		Int("score", evaluation.Score).
		Int("xp_earned", xpEarned).
		Int("new_badges", len(newBadges)).
		Msg("explanation submitted")

	// Reload with associations for the response payload.
	stored, err := s.explanations.GetByID(ctx, created.ID)
	if err != nil {
		stored = created
	}

	return dto.SubmissionResult{
		Explanation: dto.NewExplanationResponse(stored),
		XPEarned:    xpEarned,
		TotalXP:     updatedUser.TotalXP,
		Level:       updatedUser.Level,
		LeveledUp:   leveledUp,
		Streak:      updatedUser.Streak,
		NewBadges:   dto.NewBadgeResponseSlice(newBadges),
	}, nil
}

func (s *explanationService) Get(ctx context.Context, id uint) (dto.ExplanationResponse, error) {
	explanation, err := s.explanations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExplanationResponse{}, ErrExplanationNotFound
		}
		return dto.ExplanationResponse{}, err
	}
	return dto.NewExplanationResponse(explanation), nil
}

func (s *explanationService) ListByUser(ctx context.Context, userID uint, limit int) ([]dto.ExplanationResponse, error) {
	explanations, err := s.explanations.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewExplanationResponseSlice(explanations), nil
}

// prepareContent resolves the text that will be scored. Text submissions are
// sanitized and length-checked; audio is uploaded then transcribed; video is
// uploaded with optional written notes.
func (s *explanationService) prepareContent(ctx context.Context, payload dto.SubmitExplanationRequest, file *multipart.FileHeader) (string, string, error) {
	switch payload.Type {
	case models.ExplanationTypeText:
		content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
		if len(content) < minContentLength {
			return "", "", ErrContentTooShort
		}
		return content, "", nil

	case models.ExplanationTypeAudio:
		data, err := s.readMedia(file, "audio/")
		if err != nil {
			return "", "", err
		}
		if s.storage == nil {
			return "", "", fmt.Errorf("media storage is not configured")
		}
		fileURL, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(data))
		if err != nil {
			return "", "", fmt.Errorf("failed to upload media: %w", err)
		}
		if s.transcriber == nil {
			return "", "", ErrTranscriptionFailed
		}
		transcript, err := s.transcriber.Transcribe(ctx, file.Filename, bytes.NewReader(data))
		if err != nil {
			s.logger.Warn().Err(err).Msg("transcription failed")
			return "", "", ErrTranscriptionFailed
		}
		return strings.TrimSpace(transcript), fileURL, nil

	case models.ExplanationTypeVideo:
		data, err := s.readMedia(file, "video/")
		if err != nil {
			return "", "", err
		}
		if s.storage == nil {
			return "", "", fmt.Errorf("media storage is not configured")
		}
		fileURL, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(data))
		if err != nil {
			return "", "", fmt.Errorf("failed to upload media: %w", err)
		}
		return strings.TrimSpace(s.sanitizer.Sanitize(payload.Content)), fileURL, nil

	default:
		return "", "", fmt.Errorf("unsupported submission type: %s", payload.Type)
	}
}

func (s *explanationService) readMedia(file *multipart.FileHeader, mimePrefix string) ([]byte, error) {
	if file == nil {
		return nil, ErrMediaRequired
	}

	handle, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer handle.Close()

	data, err := io.ReadAll(handle)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), mimePrefix) {
		return nil, ErrMediaTypeNotAllowed
	}

	return data, nil
}

// evaluate scores the text, falling back to the local evaluator when the
// primary one is unavailable. The fallback never errors.
func (s *explanationService) evaluate(ctx context.Context, input ai.EvaluationInput) ai.Evaluation {
	if input.Text != "" && s.evaluator != nil {
		evaluation, err := s.evaluator.Evaluate(ctx, input)
		if err == nil {
			return evaluation
		}
		s.logger.Warn().Err(err).Msg("primary evaluator failed, using fallback")
	}

	evaluation, _ := s.fallback.Evaluate(ctx, input)
	return evaluation
}

func (s *explanationService) announce(ctx context.Context, userID uint, level int, leveledUp bool, badges []models.Badge) {
	if s.notifier == nil {
		return
	}
	for _, badge := range badges {
		s.notifier.Notify(ctx, userID, models.NotificationTypeBadge, fmt.Sprintf("You earned the %q badge!", badge.Name))
	}
	if leveledUp {
		s.notifier.Notify(ctx, userID, models.NotificationTypeLevelUp, fmt.Sprintf("You reached level %d!", level))
	}
}
