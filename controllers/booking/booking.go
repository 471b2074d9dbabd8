package bookingController

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courtbook/config"
	"courtbook/database"
	"courtbook/middleware"
	"courtbook/models"
	"courtbook/utils"
)

var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrPastSlot         = errors.New("cannot book a slot in the past")
	ErrCourtNotFound    = errors.New("court not found")
	ErrSlotConflict     = errors.New("slot is no longer available")
)

// BookingRequest carries one booking attempt. QuotedPrice is what the client
// saw on screen; it is echoed back for receipts but the persisted price is
// always re-derived from the pricing rules.
type BookingRequest struct {
	ClubID         uint    `json:"clubId"`
	CourtID        uint    `json:"courtId"`
	Date           string  `json:"date"` // "YYYY-MM-DD"
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerPhone  string  `json:"customerPhone"`
	Notes          string  `json:"notes"`
	IdempotencyKey string  `json:"idempotencyKey"`
	QuotedPrice    float64 `json:"price"`
}

// CreateReservation atomically converts a booking request into a confirmed
// reservation. The returned bool is true when a new row was created and
// false when the idempotency key matched an earlier attempt, in which case
// the original reservation is returned unchanged.
//
// Conflict detection and insert run in one transaction. On Postgres the
// transaction first takes an advisory lock keyed on (court, date):
// FOR UPDATE alone cannot serialize two first bookings of a free slot,
// since there is no row to lock yet. The composite unique index on
// (court_id, reservation_date, start_time, idempotency_key) backstops
// retries that race past the in-transaction replay check.
func CreateReservation(db *gorm.DB, req BookingRequest) (*models.Reservation, bool, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, false, err
	}
	startMin, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, false, err
	}
	endMin, err := utils.ParseClock(req.EndTime)
	if err != nil {
		return nil, false, err
	}
	if endMin <= startMin {
		return nil, false, ErrInvalidTimeRange
	}
	if utils.SlotStartsAt(date, startMin).Before(time.Now().UTC()) {
		return nil, false, ErrPastSlot
	}

	var court models.Court
	if err := db.Where("id = ? AND is_deleted = false", req.CourtID).First(&court).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCourtNotFound
		}
		return nil, false, err
	}

	var reservation *models.Reservation
	created := false

	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Serialize all booking attempts for this court and day. Without
		// this, two concurrent attempts for a free slot both see zero
		// overlap rows (nothing exists to lock) and both insert.
		if tx.Dialector.Name() == "postgres" {
			lockKey := fmt.Sprintf("%d:%s", req.CourtID, date.Format("2006-01-02"))
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
				return err
			}
		}

		// A retry of an attempt that already committed must return the
		// original booking, not create a second one.
		var existing models.Reservation
		err := tx.
			Where("court_id = ? AND reservation_date = ? AND start_time = ? AND idempotency_key = ?",
				req.CourtID, date, req.StartTime, req.IdempotencyKey).
			First(&existing).Error
		if err == nil {
			reservation = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Atomic check-and-insert: lock any non-cancelled reservation that
		// overlaps the requested range, then insert. SQLite (used in tests)
		// has no row locks; its writes serialize anyway.
		overlapQuery := tx.
			Where("court_id = ? AND reservation_date = ? AND status <> ?",
				req.CourtID, date, models.ReservationCancelled).
			Where("start_time < ? AND end_time > ?", req.EndTime, req.StartTime)
		if tx.Dialector.Name() == "postgres" {
			overlapQuery = overlapQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var clash models.Reservation
		err = overlapQuery.Take(&clash).Error
		if err == nil {
			return ErrSlotConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		price, err := derivePrice(tx, req.CourtID, int(date.Weekday()), startMin, endMin)
		if err != nil {
			return err
		}

		newReservation := models.Reservation{
			ClubID:           req.ClubID,
			CourtID:          req.CourtID,
			CustomerName:     req.CustomerName,
			CustomerEmail:    req.CustomerEmail,
			CustomerPhone:    req.CustomerPhone,
			ReservationDate:  date,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			DurationMinutes:  endMin - startMin,
			TotalPrice:       price,
			Status:           models.ReservationConfirmed,
			Notes:            req.Notes,
			BookingReference: utils.GenerateBookingReference(),
			IdempotencyKey:   req.IdempotencyKey,
		}
		if err := tx.Create(&newReservation).Error; err != nil {
			return err
		}
		reservation = &newReservation
		created = true
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrSlotConflict) {
			return nil, false, txErr
		}
		// The insert can lose a race the replay check cannot see: a retry
		// whose first attempt committed after this transaction started. The
		// unique idempotency index rejects the duplicate; recover the
		// original row and report success.
		var existing models.Reservation
		err := db.
			Where("court_id = ? AND reservation_date = ? AND start_time = ? AND idempotency_key = ?",
				req.CourtID, date, req.StartTime, req.IdempotencyKey).
			First(&existing).Error
		if err == nil {
			return &existing, false, nil
		}
		return nil, false, txErr
	}

	return reservation, created, nil
}

// derivePrice computes the authoritative price for the booked range from
// the court's pricing rules, never from the client. The range is priced in
// slot-duration units of the schedule window containing its start, so a
// double-length booking across a peak boundary pays each unit's own rate.
// A store failure aborts the booking; a confirmed reservation must never
// carry a fallback price it did not earn.
func derivePrice(db *gorm.DB, courtID uint, weekday, startMin, endMin int) (float64, error) {
	unit := endMin - startMin
	var window models.CourtSchedule
	err := db.
		Where("court_id = ? AND day_of_week = ? AND is_active = true", courtID, weekday).
		Where("start_time <= ? AND end_time >= ?", utils.FormatClock(startMin), utils.FormatClock(startMin)).
		Order("start_time ASC").
		First(&window).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if err == nil && window.SlotDurationMinutes > 0 && window.SlotDurationMinutes < unit {
		unit = window.SlotDurationMinutes
	}

	var rules []models.PricingRule
	if err := db.
		Where("court_id = ?", courtID).
		Order("start_time ASC, id ASC").
		Find(&rules).Error; err != nil {
		return 0, err
	}

	total := 0.0
	for m := startMin; m < endMin; m += unit {
		price := config.AppConfig.DefaultSlotPrice
		slotStart := utils.FormatClock(m)
		for _, r := range rules {
			if r.StartTime <= slotStart && slotStart < r.EndTime {
				price = r.Price
				break
			}
		}
		total += price
	}
	return total, nil
}

// CreateBooking converts a validated booking request into a reservation
func CreateBooking(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBooking").(*BookingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reservation, created, err := CreateReservation(database.Database.Db, *reqData)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict):
			return middleware.JsonResponse(c, fiber.StatusConflict, false,
				"This slot was just booked by someone else. Please refresh the schedule and pick another slot.", nil)
		case errors.Is(err, ErrPastSlot):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot book a slot in the past!", nil)
		case errors.Is(err, ErrInvalidTimeRange):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End time must be after start time!", nil)
		case errors.Is(err, ErrCourtNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Court not found!", nil)
		default:
			log.Printf("Error creating reservation: %v", err)
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false,
				"Could not complete the booking, please try again!", nil)
		}
	}

	statusCode := fiber.StatusCreated
	message := "Booking confirmed!"
	if !created {
		statusCode = fiber.StatusOK
		message = "Booking already confirmed!"
	}

	return middleware.JsonResponse(c, statusCode, true, message, fiber.Map{
		"bookingReference": reservation.BookingReference,
		"reservation":      reservation,
		"quotedPrice":      reqData.QuotedPrice,
		"currency":         config.AppConfig.Currency,
	})
}

// GetBookingByReference fetches a reservation by its booking reference
func GetBookingByReference(c *fiber.Ctx) error {
	reference := c.Params("reference")

	var reservation models.Reservation
	if err := database.Database.Db.Where("booking_reference = ?", reference).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Booking not found!", nil)
		}
		log.Printf("Error fetching booking %s: %v", reference, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load the booking, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking fetched!", reservation)
}

// ListBookings returns reservations for a court and date (operator view)
func ListBookings(c *fiber.Ctx) error {
	courtID := c.QueryInt("courtId")
	if courtID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Query parameter 'courtId' is required!", nil)
	}

	db := database.Database.Db
	query := db.Where("court_id = ?", courtID)

	if dateParam := c.Query("date"); dateParam != "" {
		date, err := utils.ParseDate(dateParam)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date, expected YYYY-MM-DD!", nil)
		}
		query = query.Where("reservation_date = ?", date)
	}

	var reservations []models.Reservation
	if err := query.Order("reservation_date ASC, start_time ASC").Find(&reservations).Error; err != nil {
		log.Printf("Error listing bookings for court %d: %v", courtID, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load bookings, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookings fetched!", reservations)
}

// CancelBooking cancels a pending or confirmed reservation
func CancelBooking(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid booking id!", nil)
	}

	db := database.Database.Db

	var reservation models.Reservation
	if err := db.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Booking not found!", nil)
		}
		log.Printf("Error fetching booking %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load the booking, please try again!", nil)
	}

	if reservation.Status != models.ReservationConfirmed && reservation.Status != models.ReservationPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only pending or confirmed bookings can be cancelled!", nil)
	}

	if err := db.Model(&reservation).Update("status", models.ReservationCancelled).Error; err != nil {
		log.Printf("Error cancelling booking %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel the booking!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking cancelled!", reservation)
}
