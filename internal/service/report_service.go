package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/models"
	"github.com/noah-isme/teachback-api/internal/repository"
	"github.com/noah-isme/teachback-api/pkg/ai"
)

// ErrInvalidReportType indicates an unknown report period type.
var ErrInvalidReportType = errors.New("invalid report type")

const insightsFallback = "Unable to generate insights at this time."

// ReportService generates periodic progress reports with narrative insights.
type ReportService interface {
	Generate(ctx context.Context, userID uint, reportType string) (dto.ReportResponse, error)
	List(ctx context.Context, userID uint, reportType string, limit int) ([]dto.ReportResponse, error)
}

type reportService struct {
	reports      repository.ReportRepository
	users        repository.UserRepository
	explanations repository.ExplanationRepository
	badges       repository.BadgeRepository
	insights     ai.InsightsGenerator
	logger       zerolog.Logger
	now          func() time.Time
}

// NewReportService constructs a ReportService instance. The insights
// generator is optional; without it reports carry the fallback narrative.
func NewReportService(reports repository.ReportRepository, users repository.UserRepository, explanations repository.ExplanationRepository, badges repository.BadgeRepository, insights ai.InsightsGenerator, logger zerolog.Logger) ReportService {
	return &reportService{
		reports:      reports,
		users:        users,
		explanations: explanations,
		badges:       badges,
		insights:     insights,
		logger:       logger.With().Str("component", "report_service").Logger(),
		now:          time.Now,
	}
}

func (s *reportService) Generate(ctx context.Context, userID uint, reportType string) (dto.ReportResponse, error) {
	if !models.IsValidReportType(reportType) {
		return dto.ReportResponse{}, ErrInvalidReportType
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReportResponse{}, ErrUserNotFound
		}
		return dto.ReportResponse{}, err
	}

	aggregates, err := s.explanations.AggregatesByUser(ctx, userID)
	if err != nil {
		return dto.ReportResponse{}, err
	}
	badgesCount, err := s.badges.CountByUser(ctx, userID)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	data := map[string]interface{}{
		"explanations_count": aggregates.ExplanationsCount,
		"average_score":      math.Round(aggregates.AverageScore*100) / 100,
		"total_xp":           user.TotalXP,
		"level":              user.Level,
		"streak":             user.Streak,
		"badges_count":       badgesCount,
		"upvotes_received":   aggregates.UpvotesReceived,
		"subjects_explained": aggregates.SubjectsExplained,
	}
	data["insights"] = s.generateInsights(ctx, data)

	report := models.Report{
		UserID: userID,
		Type:   reportType,
		Period: periodLabel(reportType, s.now()),
		Data:   datatypes.JSONMap(data),
	}

	if err := s.reports.Create(ctx, &report); err != nil {
		return dto.ReportResponse{}, err
	}

	s.logger.Info().Uint("user_id", userID).Str("type", reportType).Msg("report generated")

	return dto.NewReportResponse(report), nil
}

func (s *reportService) List(ctx context.Context, userID uint, reportType string, limit int) ([]dto.ReportResponse, error) {
	if reportType != "" && !models.IsValidReportType(reportType) {
		return nil, ErrInvalidReportType
	}

	reports, err := s.reports.ListRecent(ctx, userID, reportType, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewReportResponseSlice(reports), nil
}

func (s *reportService) generateInsights(ctx context.Context, data map[string]interface{}) string {
	if s.insights == nil {
		return insightsFallback
	}
	narrative, err := s.insights.GenerateInsights(ctx, data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("insights generation failed, using fallback")
		return insightsFallback
	}
	return narrative
}

func periodLabel(reportType string, now time.Time) string {
	now = now.UTC()
	switch reportType {
	case models.ReportTypeDaily:
		return now.Format("2006-01-02")
	case models.ReportTypeWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case models.ReportTypeMonthly:
		return now.Format("2006-01")
	default:
		return now.Format("2006")
	}
}
