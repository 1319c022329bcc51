package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		name     string
		severity string
		want     int
	}{
		{name: "critical", severity: SeverityCritical, want: 3},
		{name: "warning", severity: SeverityWarning, want: 2},
		{name: "info", severity: SeverityInfo, want: 1},
		{name: "unknown", severity: "URGENT", want: 0},
		{name: "empty", severity: "", want: 0},
		{name: "lowercase is unknown", severity: "critical", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityLevel(tt.severity))
		})
	}
}

func TestAllocationBucket(t *testing.T) {
	tests := []struct {
		name      string
		assetType string
		want      string
	}{
		{name: "cash", assetType: AssetTypeCash, want: "liquid"},
		{name: "equity", assetType: AssetTypeEquity, want: "equities"},
		{name: "etf", assetType: AssetTypeETF, want: "equities"},
		{name: "crypto", assetType: AssetTypeCrypto, want: "crypto"},
		{name: "bond", assetType: AssetTypeBond, want: "bonds"},
		{name: "other", assetType: AssetTypeOther, want: "other"},
		{name: "unknown falls through to other", assetType: "REAL_ESTATE", want: "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllocationBucket(tt.assetType))
		})
	}
}

func TestDefaultAllocationTargets(t *testing.T) {
	targets := DefaultAllocationTargets()

	var sum float64
	for _, pct := range targets {
		sum += pct
	}
	assert.Equal(t, 100.0, sum)
	assert.Equal(t, 65.0, targets["liquid"])
}

func TestHoldingMath(t *testing.T) {
	h := &Holding{Quantity: 10, CostBasis: 400, CurrentPrice: 500}

	assert.Equal(t, 4000.0, h.TotalCost())
	assert.Equal(t, 5000.0, h.CurrentValue())

	gain, pct := h.GainLoss()
	assert.Equal(t, 1000.0, gain)
	assert.InDelta(t, 25.0, pct, 0.001)

	zero := &Holding{Quantity: 1, CurrentPrice: 100}
	gain, pct = zero.GainLoss()
	assert.Equal(t, 100.0, gain)
	assert.Zero(t, pct)
}
