package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
)

// Reservation is the only persisted write artifact of the booking flow and
// the single source of truth for slot occupancy. Two unique indexes carry
// the correctness guarantees: booking_reference is globally unique, and
// (court_id, reservation_date, start_time, idempotency_key) makes client
// retries collapse onto the original row at the storage layer.
type Reservation struct {
	gorm.Model
	ClubID           uint      `gorm:"not null;index" json:"clubId"`
	CourtID          uint      `gorm:"not null;index:idx_res_court_date;uniqueIndex:idx_res_idem" json:"courtId"`
	CustomerName     string    `gorm:"not null" json:"customerName"`
	CustomerEmail    string    `gorm:"not null" json:"customerEmail"`
	CustomerPhone    string    `gorm:"not null" json:"customerPhone"`
	ReservationDate  time.Time `gorm:"type:date;not null;index:idx_res_court_date;uniqueIndex:idx_res_idem" json:"reservationDate"`
	StartTime        string    `gorm:"size:5;not null;uniqueIndex:idx_res_idem" json:"startTime"` // "HH:MM"
	EndTime          string    `gorm:"size:5;not null" json:"endTime"`                            // "HH:MM"
	DurationMinutes  int       `gorm:"not null" json:"durationMinutes"`
	TotalPrice       float64   `gorm:"not null" json:"totalPrice"`
	Status           string    `gorm:"default:'CONFIRMED';index" json:"status"` // PENDING, CONFIRMED, CANCELLED, COMPLETED
	Notes            string    `gorm:"default:''" json:"notes"`
	BookingReference string    `gorm:"size:20;not null;uniqueIndex" json:"bookingReference"`
	IdempotencyKey   string    `gorm:"size:64;not null;uniqueIndex:idx_res_idem" json:"-"`

	// Relations
	Club  Club  `gorm:"foreignKey:ClubID" json:"-"`
	Court Court `gorm:"foreignKey:CourtID" json:"-"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// Occupies reports whether the reservation still blocks its time range.
func (r *Reservation) Occupies() bool {
	return r.Status != ReservationCancelled
}
