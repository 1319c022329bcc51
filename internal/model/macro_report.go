package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MacroReport is one Dalio-style macro regime scan.
type MacroReport struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Status string `gorm:"type:varchar(20);not null" json:"status"`

	RawSearchData datatypes.JSON `gorm:"type:jsonb" json:"raw_search_data"`

	ShortTermDebtCycle datatypes.JSON `gorm:"type:jsonb" json:"short_term_debt_cycle"`
	LongTermDebtCycle  datatypes.JSON `gorm:"type:jsonb" json:"long_term_debt_cycle"`
	BusinessCycle      datatypes.JSON `gorm:"type:jsonb" json:"business_cycle"`

	FedFundsRate     *float64       `json:"fed_funds_rate"`
	YieldCurve       datatypes.JSON `gorm:"type:jsonb" json:"yield_curve"`
	CPIInflation     *float64       `json:"cpi_inflation"`
	PCEInflation     *float64       `json:"pce_inflation"`
	UnemploymentRate *float64       `json:"unemployment_rate"`
	GDPGrowth        *float64       `json:"gdp_growth"`
	CreditSpreads    datatypes.JSON `gorm:"type:jsonb" json:"credit_spreads"`
	M2MoneySupply    datatypes.JSON `gorm:"type:jsonb" json:"m2_money_supply"`

	HistoricalAnalogPeriod       *string        `gorm:"type:varchar(255)" json:"historical_analog_period"`
	HistoricalAnalogDescription  *string        `gorm:"type:text" json:"historical_analog_description"`
	HistoricalAnalogSimilarities datatypes.JSON `gorm:"type:jsonb" json:"historical_analog_similarities"`
	HistoricalAnalogDifferences  datatypes.JSON `gorm:"type:jsonb" json:"historical_analog_differences"`

	PortfolioImplications datatypes.JSON `gorm:"type:jsonb" json:"portfolio_implications"`
	ThingsToWatch         datatypes.JSON `gorm:"type:jsonb" json:"things_to_watch"`

	RiskLevel        *string `gorm:"type:varchar(16)" json:"risk_level"`
	ExecutiveSummary *string `gorm:"type:text" json:"executive_summary"`

	// SimplifiedReport caches the plain-language rewrite, generated on
	// first request.
	SimplifiedReport *string `gorm:"type:text" json:"simplified_report"`

	RawResponse datatypes.JSON `gorm:"type:jsonb" json:"raw_response"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MacroReport) TableName() string {
	return "macro_reports"
}

func (r *MacroReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
