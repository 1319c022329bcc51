package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchlistItem is unique per (user, ticker). The unique index makes a
// duplicate insert fail with gorm.ErrDuplicatedKey so callers can tell
// "already tracked" apart from "added"; automatic adds swallow the conflict.
type WatchlistItem struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_watchlist_user_ticker" json:"user_id"`
	Ticker      string `gorm:"type:varchar(16);not null;uniqueIndex:idx_watchlist_user_ticker" json:"ticker"`
	CompanyName string `gorm:"type:varchar(255);not null;default:''" json:"company_name"`

	Reason          *string  `gorm:"type:text" json:"reason"`
	TargetPrice     *float64 `json:"target_price"`
	TargetCondition *string  `gorm:"type:text" json:"target_condition"`

	Status      string     `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	LastChecked *time.Time `json:"last_checked"`
	LatestNote  *string    `gorm:"type:text" json:"latest_note"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}

func (w *WatchlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Status == "" {
		w.Status = EntityStatusActive
	}
	return nil
}
