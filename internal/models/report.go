package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report is a generated learning summary for one user and period.
// Email delivery is recorded but intentionally never triggered.
type Report struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"not null;index" json:"user_id"`
	Type      string            `gorm:"size:16;not null" json:"type"`
	Period    string            `gorm:"size:32;not null" json:"period"`
	Data      datatypes.JSONMap `gorm:"not null" json:"data"`
	EmailSent bool              `gorm:"not null;default:false" json:"email_sent"`
	CreatedAt time.Time         `json:"created_at"`
}

const (
	// ReportTypeDaily covers one day of activity.
	ReportTypeDaily = "daily"
	// ReportTypeWeekly covers one week of activity.
	ReportTypeWeekly = "weekly"
	// ReportTypeMonthly covers one month of activity.
	ReportTypeMonthly = "monthly"
	// ReportTypeYearly covers one year of activity.
	ReportTypeYearly = "yearly"
)

// IsValidReportType reports whether the given type is supported.
func IsValidReportType(t string) bool {
	switch t {
	case ReportTypeDaily, ReportTypeWeekly, ReportTypeMonthly, ReportTypeYearly:
		return true
	}
	return false
}
