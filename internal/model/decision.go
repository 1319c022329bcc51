package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Decision actions.
const (
	DecisionBuy   = "BUY"
	DecisionSell  = "SELL"
	DecisionPass  = "PASS"
	DecisionWatch = "WATCH"
	DecisionTrim  = "TRIM"
	DecisionAdd   = "ADD"
)

// Decision outcomes.
const (
	OutcomeCorrect   = "CORRECT"
	OutcomeIncorrect = "INCORRECT"
	OutcomePending   = "PENDING"
)

// Decision is the investor's journal entry for a buy/sell/pass call,
// optionally linked to the analysis or holding that motivated it.
type Decision struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Ticker string `gorm:"type:varchar(16);not null" json:"ticker"`
	Action string `gorm:"type:varchar(16);not null" json:"action"`

	DecisionDate    time.Time `json:"decision_date"`
	PriceAtDecision *float64  `json:"price_at_decision"`

	Thesis        *string        `gorm:"type:text" json:"thesis"`
	Reasoning     *string        `gorm:"type:text" json:"reasoning"`
	FollowUpNotes datatypes.JSON `gorm:"type:jsonb" json:"follow_up_notes"`
	Outcome       *string        `gorm:"type:varchar(16)" json:"outcome"`

	AnalysisID *string `gorm:"type:uuid" json:"analysis_id"`
	HoldingID  *string `gorm:"type:uuid" json:"holding_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Decision) TableName() string {
	return "decisions"
}

func (d *Decision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
