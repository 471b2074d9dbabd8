package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"courtbook/database"
	"courtbook/models"
)

// InitializeReservationScheduler sets up the reservation maintenance scheduler
func InitializeReservationScheduler() {
	log.Println("[RESERVATION-SCHEDULER] Initializing reservation scheduler...")

	c := cron.New()

	// Run hourly to close out reservations whose time has passed
	c.AddFunc("@hourly", func() {
		log.Println("[RESERVATION-SCHEDULER] Running hourly reservation maintenance...")
		CompletePastReservations()
	})

	c.Start()
	log.Println("[RESERVATION-SCHEDULER] Reservation scheduler started - runs hourly")
}

// CompletePastReservations marks confirmed reservations whose end time has
// passed as COMPLETED. Cancelled reservations are never touched.
func CompletePastReservations() {
	db := database.Database.Db
	now := time.Now().UTC()
	today := NormalizeDate(now)
	nowClock := FormatClock(now.Hour()*60 + now.Minute())

	result := db.Model(&models.Reservation{}).
		Where("status = ?", models.ReservationConfirmed).
		Where("reservation_date < ? OR (reservation_date = ? AND end_time <= ?)", today, today, nowClock).
		Update("status", models.ReservationCompleted)

	if result.Error != nil {
		log.Printf("[RESERVATION-SCHEDULER] Error completing past reservations: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[RESERVATION-SCHEDULER] Marked %d reservations as completed", result.RowsAffected)
	}
}
