package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WatchlistScan is one evaluation pass over active watchlist items.
type WatchlistScan struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Status string `gorm:"type:varchar(20);not null" json:"status"`

	TickersScanned datatypes.JSON `gorm:"type:jsonb" json:"tickers_scanned"`
	RawSearchData  datatypes.JSON `gorm:"type:jsonb" json:"raw_search_data"`

	Summary      *string        `gorm:"type:text" json:"summary"`
	ItemsChecked int            `gorm:"not null;default:0" json:"items_checked"`
	RawResponse  datatypes.JSON `gorm:"type:jsonb" json:"raw_response"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WatchlistScan) TableName() string {
	return "watchlist_scans"
}

func (s *WatchlistScan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
