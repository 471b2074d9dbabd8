package bookingController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"courtbook/config"
	"courtbook/database"
	"courtbook/models"
	"courtbook/utils"
)

func init() {
	config.AppConfig = &config.Config{
		Port:             "3000",
		JWTKey:           "test-secret",
		SaltRound:        4,
		DefaultSlotPrice: 10,
		Currency:         "EUR",
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Club{},
		&models.Court{},
		&models.CourtSchedule{},
		&models.PricingRule{},
		&models.Reservation{},
	))
	return db
}

// seedCourt creates a club, a court, a Monday 08:00-12:00 window with 60
// minute slots and the off-peak/peak pricing split used across these tests.
func seedCourt(t *testing.T, db *gorm.DB) models.Court {
	t.Helper()

	club := models.Club{Name: "Test Club"}
	require.NoError(t, db.Create(&club).Error)

	court := models.Court{ClubID: club.ID, Name: "Court A"}
	require.NoError(t, db.Create(&court).Error)

	window := models.CourtSchedule{
		CourtID:             court.ID,
		DayOfWeek:           int(time.Monday),
		StartTime:           "08:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 60,
		IsActive:            true,
	}
	require.NoError(t, db.Create(&window).Error)

	rules := []models.PricingRule{
		{CourtID: court.ID, StartTime: "08:00", EndTime: "10:00", Price: 20, IsPeakHour: false},
		{CourtID: court.ID, StartTime: "10:00", EndTime: "12:00", Price: 30, IsPeakHour: true},
	}
	require.NoError(t, db.Create(&rules).Error)

	return court
}

func nextMonday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return utils.NormalizeDate(d)
}

func baseRequest(court models.Court, start, end string) BookingRequest {
	return BookingRequest{
		ClubID:         court.ClubID,
		CourtID:        court.ID,
		Date:           nextMonday().Format("2006-01-02"),
		StartTime:      start,
		EndTime:        end,
		CustomerName:   "Ana Garcia",
		CustomerEmail:  "ana@example.com",
		CustomerPhone:  "+34600000001",
		IdempotencyKey: uuid.NewString(),
	}
}

func TestCreateReservationSuccess(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	req := baseRequest(court, "09:00", "10:00")
	req.QuotedPrice = 5 // tampered client price must be ignored

	reservation, created, err := CreateReservation(db, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.ReservationConfirmed, reservation.Status)
	assert.Equal(t, 60, reservation.DurationMinutes)
	assert.Equal(t, 20.0, reservation.TotalPrice, "price must be re-derived from pricing rules")
	assert.Contains(t, reservation.BookingReference, "CB-")
}

func TestCreateReservationPeakPrice(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	reservation, _, err := CreateReservation(db, baseRequest(court, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, 30.0, reservation.TotalPrice)
}

func TestCreateReservationPriceAcrossRuleBoundary(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	// 09:00-11:00 covers one off-peak and one peak hour
	reservation, _, err := CreateReservation(db, baseRequest(court, "09:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, 50.0, reservation.TotalPrice)
}

func TestCreateReservationConflict(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	_, created, err := CreateReservation(db, baseRequest(court, "09:00", "10:00"))
	require.NoError(t, err)
	require.True(t, created)

	// Different attempt, partially overlapping range
	_, _, err = CreateReservation(db, baseRequest(court, "09:30", "10:30"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateReservationIdempotentRetry(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	req := baseRequest(court, "09:00", "10:00")

	first, created, err := CreateReservation(db, req)
	require.NoError(t, err)
	assert.True(t, created)

	// Client timed out and retries the identical request
	second, created, err := CreateReservation(db, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.BookingReference, second.BookingReference)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateReservationRejectsPastSlot(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	req := baseRequest(court, "09:00", "10:00")
	req.Date = time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")

	_, _, err := CreateReservation(db, req)
	assert.ErrorIs(t, err, ErrPastSlot)
}

func TestCreateReservationRejectsInvalidRange(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	_, _, err := CreateReservation(db, baseRequest(court, "10:00", "09:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, _, err = CreateReservation(db, baseRequest(court, "10:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreateReservationUnknownCourt(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	req := baseRequest(court, "09:00", "10:00")
	req.CourtID = 999

	_, _, err := CreateReservation(db, req)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestCancelledReservationDoesNotBlockSlot(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	first, _, err := CreateReservation(db, baseRequest(court, "09:00", "10:00"))
	require.NoError(t, err)
	require.NoError(t, db.Model(first).Update("status", models.ReservationCancelled).Error)

	second, created, err := CreateReservation(db, baseRequest(court, "09:00", "10:00"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.BookingReference, second.BookingReference)
}

// Two customers racing for the same free slot with distinct idempotency
// keys: exactly one booking may win. On Postgres the per-(court, day)
// advisory lock serializes the attempts; the sqlite test driver serializes
// on its single connection, so the same code path is exercised here.
func TestConcurrentBookingSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := CreateReservation(db, baseRequest(court, "09:00", "10:00"))
			results[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// A failing pricing-rule read must abort the booking instead of silently
// confirming it at the default price.
func TestCreateReservationPricingStoreFailureAborts(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	require.NoError(t, db.Migrator().DropTable(&models.PricingRule{}))

	_, _, err := CreateReservation(db, baseRequest(court, "09:00", "10:00"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotConflict)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestNoDoubleBookingInvariant(t *testing.T) {
	db := setupTestDB(t)
	court := seedCourt(t, db)

	// Hammer the same morning with overlapping attempts; whatever the
	// individual outcomes, the persisted set must be overlap-free.
	for i := 0; i < 20; i++ {
		start := 8*60 + (i%4)*30
		req := baseRequest(court, utils.FormatClock(start), utils.FormatClock(start+60))
		CreateReservation(db, req)
	}

	var reservations []models.Reservation
	require.NoError(t, db.Where("status <> ?", models.ReservationCancelled).Find(&reservations).Error)
	require.NotEmpty(t, reservations)

	for i := range reservations {
		for j := i + 1; j < len(reservations); j++ {
			a, b := reservations[i], reservations[j]
			overlap := a.StartTime < b.EndTime && a.EndTime > b.StartTime
			assert.False(t, overlap, "reservations %s and %s overlap", a.BookingReference, b.BookingReference)
		}
	}
}

func setupBookingApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	// Stand-in for the route validator: parse the body and stash it the
	// same way validators/booking does. Field validation itself is covered
	// by the validator package tests.
	app.Post("/bookings", func(c *fiber.Ctx) error {
		reqData := new(BookingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("validatedBooking", reqData)
		return CreateBooking(c)
	})
	app.Get("/bookings/reference/:reference", GetBookingByReference)
	app.Patch("/bookings/:id/cancel", CancelBooking)
	return app, db
}

func postBooking(t *testing.T, app *fiber.App, req BookingRequest) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest("POST", "/bookings", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(httpReq)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestCreateBookingEndpoint(t *testing.T) {
	app, db := setupBookingApp(t)
	court := seedCourt(t, db)

	req := baseRequest(court, "09:00", "10:00")

	status, body := postBooking(t, app, req)
	assert.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	reference := data["bookingReference"].(string)
	assert.Contains(t, reference, "CB-")

	// Retry with the same idempotency key returns the same reference
	status, body = postBooking(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, reference, data["bookingReference"].(string))

	// A different customer racing for the same slot gets a conflict
	conflicting := baseRequest(court, "09:00", "10:00")
	conflicting.CustomerName = "Luis Perez"
	status, body = postBooking(t, app, conflicting)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["message"].(string), "refresh")
}

func TestCreateBookingEndpointPastDate(t *testing.T) {
	app, db := setupBookingApp(t)
	court := seedCourt(t, db)

	req := baseRequest(court, "09:00", "10:00")
	req.Date = time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")

	status, _ := postBooking(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetBookingByReferenceEndpoint(t *testing.T) {
	app, db := setupBookingApp(t)
	court := seedCourt(t, db)

	reservation, _, err := CreateReservation(db, baseRequest(court, "09:00", "10:00"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/bookings/reference/"+reservation.BookingReference, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/bookings/reference/CB-DOESNOTEXIST", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCancelBookingEndpoint(t *testing.T) {
	app, db := setupBookingApp(t)
	court := seedCourt(t, db)

	reservation, _, err := CreateReservation(db, baseRequest(court, "09:00", "10:00"))
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", fmt.Sprintf("/bookings/%d/cancel", reservation.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Reservation
	require.NoError(t, db.First(&got, reservation.ID).Error)
	assert.Equal(t, models.ReservationCancelled, got.Status)

	// Cancelling twice is rejected
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
