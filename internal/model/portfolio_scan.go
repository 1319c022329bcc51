package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PortfolioScan is one news/fundamentals screening pass over active holdings.
type PortfolioScan struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Status string `gorm:"type:varchar(20);not null" json:"status"`

	TickersScanned datatypes.JSON `gorm:"type:jsonb" json:"tickers_scanned"`
	RawSearchData  datatypes.JSON `gorm:"type:jsonb" json:"raw_search_data"`

	Summary         *string        `gorm:"type:text" json:"summary"`
	AlertsGenerated int            `gorm:"not null;default:0" json:"alerts_generated"`
	RawResponse     datatypes.JSON `gorm:"type:jsonb" json:"raw_response"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PortfolioScan) TableName() string {
	return "portfolio_scans"
}

func (s *PortfolioScan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
