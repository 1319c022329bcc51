package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset types used for allocation bucketing.
const (
	AssetTypeCash   = "CASH"
	AssetTypeEquity = "EQUITY"
	AssetTypeETF    = "ETF"
	AssetTypeCrypto = "CRYPTO"
	AssetTypeBond   = "BOND"
	AssetTypeOther  = "OTHER"
)

type Holding struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Ticker      string `gorm:"type:varchar(16);not null" json:"ticker"`
	CompanyName string `gorm:"type:varchar(255);not null;default:''" json:"company_name"`
	AssetType   string `gorm:"type:varchar(16);not null" json:"asset_type"`

	Quantity     float64   `gorm:"not null;default:0" json:"quantity"`
	CostBasis    float64   `gorm:"not null;default:0" json:"cost_basis"`
	CurrentPrice float64   `gorm:"not null;default:0" json:"current_price"`
	EntryDate    time.Time `json:"entry_date"`

	Thesis       *string `gorm:"type:text" json:"thesis"`
	ExitCriteria *string `gorm:"type:text" json:"exit_criteria"`

	Status string `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Holding) TableName() string {
	return "holdings"
}

func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Status == "" {
		h.Status = EntityStatusActive
	}
	return nil
}

// TotalCost is quantity times cost basis.
func (h *Holding) TotalCost() float64 {
	return h.Quantity * h.CostBasis
}

// CurrentValue is quantity times current price.
func (h *Holding) CurrentValue() float64 {
	return h.Quantity * h.CurrentPrice
}

// GainLoss returns the absolute and percentage gain over cost.
func (h *Holding) GainLoss() (float64, float64) {
	cost := h.TotalCost()
	gain := h.CurrentValue() - cost
	if cost <= 0 {
		return gain, 0
	}
	return gain, gain / cost * 100
}
