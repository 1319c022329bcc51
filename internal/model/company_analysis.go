package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompanyAnalysis is one Buffett-style research job for a single ticker.
// Every AI-derived field is nullable: the generation output is an untrusted
// contract and any field may be missing.
type CompanyAnalysis struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Ticker      string `gorm:"type:varchar(16);not null" json:"ticker"`
	CompanyName *string `gorm:"type:varchar(255)" json:"company_name"`
	Status      string `gorm:"type:varchar(20);not null" json:"status"`

	// RawSearchData is persisted before the generation call so a generation
	// failure never loses the search results.
	RawSearchData datatypes.JSON `gorm:"type:jsonb" json:"raw_search_data"`

	RevenueGrowth datatypes.JSON `gorm:"type:jsonb" json:"revenue_growth"`
	OwnerEarnings datatypes.JSON `gorm:"type:jsonb" json:"owner_earnings"`
	Margins       datatypes.JSON `gorm:"type:jsonb" json:"margins"`
	ROIC          datatypes.JSON `gorm:"type:jsonb" json:"roic"`
	DebtToEquity  *float64       `json:"debt_to_equity"`
	FreeCashFlow  datatypes.JSON `gorm:"type:jsonb" json:"free_cash_flow"`

	MoatType     *string        `gorm:"type:varchar(255)" json:"moat_type"`
	MoatScore    *float64       `json:"moat_score"`
	MoatEvidence datatypes.JSON `gorm:"type:jsonb" json:"moat_evidence"`
	MoatThreats  datatypes.JSON `gorm:"type:jsonb" json:"moat_threats"`

	AIDisruptionLevel    *string  `gorm:"type:varchar(32)" json:"ai_disruption_level"`
	AIDisruptionScore    *float64 `json:"ai_disruption_score"`
	AIDisruptionAnalysis *string  `gorm:"type:text" json:"ai_disruption_analysis"`

	BusinessQualityScore   *float64 `json:"business_quality_score"`
	ManagementScore        *float64 `json:"management_score"`
	FinancialStrengthScore *float64 `json:"financial_strength_score"`
	ValuationScore         *float64 `json:"valuation_score"`
	MoatDurabilityScore    *float64 `json:"moat_durability_score"`

	GeneratedQuestions datatypes.JSON `gorm:"type:jsonb" json:"generated_questions"`
	ResearchNotes      datatypes.JSON `gorm:"type:jsonb" json:"research_notes"`

	Verdict          *string `gorm:"type:varchar(16)" json:"verdict"`
	VerdictReasoning *string `gorm:"type:text" json:"verdict_reasoning"`
	ExecutiveSummary *string `gorm:"type:text" json:"executive_summary"`

	KeyRisks     datatypes.JSON `gorm:"type:jsonb" json:"key_risks"`
	KeyCatalysts datatypes.JSON `gorm:"type:jsonb" json:"key_catalysts"`

	// RawResponse keeps the full generation output for audit and refresh.
	RawResponse datatypes.JSON `gorm:"type:jsonb" json:"raw_response"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompanyAnalysis) TableName() string {
	return "company_analyses"
}

func (a *CompanyAnalysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
