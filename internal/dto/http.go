package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type StartAnalysisRequest struct {
	Ticker string `json:"ticker" validate:"required,min=1,max=10"`
}

type RefreshAnalysisRequest struct {
	Notes string `json:"notes"`
}

type UpdateAnalysisRequest struct {
	GeneratedQuestions []GeneratedQuestion `json:"generated_questions"`
	ResearchNotes      []ResearchNote      `json:"research_notes"`
}

type MacroChatRequest struct {
	Question string    `json:"question" validate:"required"`
	History  []Message `json:"history"`
}

type UpdateAlertRequest struct {
	Status string `json:"status" validate:"required,oneof=READ DISMISSED"`
}

type HoldingRequest struct {
	Ticker       string   `json:"ticker" validate:"required,min=1,max=10"`
	CompanyName  string   `json:"company_name"`
	AssetType    string   `json:"asset_type" validate:"required,oneof=CASH EQUITY ETF CRYPTO BOND OTHER"`
	Quantity     float64  `json:"quantity" validate:"gte=0"`
	CostBasis    float64  `json:"cost_basis" validate:"gte=0"`
	CurrentPrice float64  `json:"current_price" validate:"gte=0"`
	EntryDate    string   `json:"entry_date"`
	Thesis       *string  `json:"thesis"`
	ExitCriteria *string  `json:"exit_criteria"`
	Status       string   `json:"status"`
}

type WatchlistItemRequest struct {
	Ticker          string   `json:"ticker" validate:"required,min=1,max=10"`
	CompanyName     string   `json:"company_name"`
	Reason          *string  `json:"reason"`
	TargetPrice     *float64 `json:"target_price"`
	TargetCondition *string  `json:"target_condition"`
}

type UpdateWatchlistItemRequest struct {
	CompanyName     *string  `json:"company_name"`
	Reason          *string  `json:"reason"`
	TargetPrice     *float64 `json:"target_price"`
	TargetCondition *string  `json:"target_condition"`
	Status          *string  `json:"status" validate:"omitempty,oneof=ACTIVE ARCHIVED"`
}

type DecisionRequest struct {
	Ticker          string   `json:"ticker" validate:"required,min=1,max=10"`
	Action          string   `json:"action" validate:"required,oneof=BUY SELL PASS WATCH TRIM ADD"`
	DecisionDate    string   `json:"decision_date"`
	PriceAtDecision *float64 `json:"price_at_decision"`
	Thesis          *string  `json:"thesis"`
	Reasoning       *string  `json:"reasoning"`
	Outcome         *string  `json:"outcome" validate:"omitempty,oneof=CORRECT INCORRECT PENDING"`
	AnalysisID      *string  `json:"analysis_id"`
	HoldingID       *string  `json:"holding_id"`
}

type SettingsRequest struct {
	AllocationTargets map[string]float64 `json:"allocation_targets" validate:"required"`
}
