package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alert types produced by scans.
const (
	AlertTypeNews            = "NEWS"
	AlertTypeFundamental     = "FUNDAMENTAL"
	AlertTypeMacro           = "MACRO"
	AlertTypeThesisViolation = "THESIS_VIOLATION"
	AlertTypeWatchlistAdd    = "WATCHLIST_ADD"
)

// PortfolioAlert is created as a side effect of a completed scan. Immutable
// except for Status, which the user flips to READ or DISMISSED.
type PortfolioAlert struct {
	ID     string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string  `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Ticker *string `gorm:"type:varchar(16)" json:"ticker"`

	AlertType string `gorm:"type:varchar(32);not null" json:"alert_type"`
	Severity  string `gorm:"type:varchar(16);not null" json:"severity"`
	// SeverityLevel is the numeric rank of Severity, stored so alerts sort
	// stably by (severity desc, recency desc).
	SeverityLevel int `gorm:"not null;default:0;index:idx_alerts_order,priority:1,sort:desc" json:"severity_level"`

	Title           string  `gorm:"type:varchar(255);not null" json:"title"`
	Description     string  `gorm:"type:text;not null" json:"description"`
	ActionSuggested *string `gorm:"type:text" json:"action_suggested"`

	Source string  `gorm:"type:varchar(32);not null" json:"source"`
	ScanID *string `gorm:"type:uuid;index" json:"scan_id"`

	Status string `gorm:"type:varchar(16);not null;default:UNREAD" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_alerts_order,priority:2,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PortfolioAlert) TableName() string {
	return "portfolio_alerts"
}

func (a *PortfolioAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = AlertStatusUnread
	}
	return nil
}
