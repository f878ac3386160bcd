package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
)

// ReportRepository defines data operations for generated learning reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListRecent(ctx context.Context, userID uint, reportType string, limit int) ([]models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository instantiates the repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) ListRecent(ctx context.Context, userID uint, reportType string, limit int) ([]models.Report, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if reportType != "" {
		query = query.Where("type = ?", reportType)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
