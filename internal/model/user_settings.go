package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserSettings struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"user_id"`

	// AllocationTargets is a map of allocation bucket to target percent.
	AllocationTargets datatypes.JSON `gorm:"type:jsonb" json:"allocation_targets"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// DefaultAllocationTargets is the allocation used before the user saves one.
func DefaultAllocationTargets() map[string]float64 {
	return map[string]float64{
		"liquid":   65,
		"equities": 12.5,
		"crypto":   10,
		"bonds":    7.5,
		"other":    5,
	}
}

// AllocationBucket maps an asset type to its allocation bucket.
func AllocationBucket(assetType string) string {
	switch assetType {
	case AssetTypeCash:
		return "liquid"
	case AssetTypeEquity, AssetTypeETF:
		return "equities"
	case AssetTypeCrypto:
		return "crypto"
	case AssetTypeBond:
		return "bonds"
	default:
		return "other"
	}
}
