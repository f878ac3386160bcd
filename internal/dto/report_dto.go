package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/teachback-api/internal/models"
)

// GenerateReportRequest asks for a progress report over a period.
type GenerateReportRequest struct {
	Type string `json:"type" validate:"required,oneof=daily weekly monthly yearly"`
}

// ReportResponse is a generated progress report.
type ReportResponse struct {
	ID        uint              `json:"id"`
	Type      string            `json:"type"`
	Period    string            `json:"period"`
	Data      datatypes.JSONMap `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewReportResponse converts a Report model into a DTO.
func NewReportResponse(model models.Report) ReportResponse {
	return ReportResponse{
		ID:        model.ID,
		Type:      model.Type,
		Period:    model.Period,
		Data:      model.Data,
		CreatedAt: model.CreatedAt,
	}
}

// NewReportResponseSlice converts report models into DTOs.
func NewReportResponseSlice(reports []models.Report) []ReportResponse {
	responses := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, NewReportResponse(report))
	}
	return responses
}
