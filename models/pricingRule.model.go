package models

import (
	"gorm.io/gorm"
)

// PricingRule assigns a price (and peak-hour flag) to slots starting inside
// its time range. Rules may overlap; the first rule by ascending start time
// wins, so ordering is deterministic.
type PricingRule struct {
	gorm.Model
	CourtID    uint    `gorm:"not null;index" json:"courtId"`
	StartTime  string  `gorm:"size:5;not null" json:"startTime"` // "HH:MM"
	EndTime    string  `gorm:"size:5;not null" json:"endTime"`   // "HH:MM"
	Price      float64 `gorm:"not null" json:"price"`
	IsPeakHour bool    `gorm:"default:false" json:"isPeakHour"`

	// Relations
	Court Court `gorm:"foreignKey:CourtID" json:"-"`
}

func (PricingRule) TableName() string {
	return "pricing_rules"
}
