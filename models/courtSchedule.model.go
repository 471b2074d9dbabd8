package models

import (
	"gorm.io/gorm"
)

// CourtSchedule is a recurring weekly window during which a court accepts
// bookings. Several windows may exist for the same court and weekday; all
// active ones are unioned when slots are generated.
type CourtSchedule struct {
	gorm.Model
	CourtID             uint   `gorm:"not null;index:idx_schedule_court_day" json:"courtId"`
	DayOfWeek           int    `gorm:"not null;index:idx_schedule_court_day" json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	StartTime           string `gorm:"size:5;not null" json:"startTime"`                       // "HH:MM"
	EndTime             string `gorm:"size:5;not null" json:"endTime"`                         // "HH:MM"
	SlotDurationMinutes int    `gorm:"not null" json:"slotDurationMinutes"`
	// No default tag: gorm drops zero-valued fields that carry one, which
	// would silently store a deactivated window as active.
	IsActive bool `gorm:"not null" json:"isActive"`

	// Relations
	Court Court `gorm:"foreignKey:CourtID" json:"-"`
}

func (CourtSchedule) TableName() string {
	return "court_schedules"
}
