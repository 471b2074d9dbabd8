package availabilityController

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"courtbook/config"
	"courtbook/database"
	"courtbook/middleware"
	"courtbook/models"
	"courtbook/utils"
)

const (
	SlotAvailable = "AVAILABLE"
	SlotHeld      = "HELD" // reserved in the contract, currently never emitted
	SlotOccupied  = "OCCUPIED"
)

// BookingInfo is attached to occupied slots so the presenter can show who
// holds them.
type BookingInfo struct {
	CustomerName     string `json:"customerName"`
	BookingReference string `json:"bookingReference"`
}

// TimeSlot is a derived, never persisted view of one bookable range. It is
// recomputed from schedule windows, pricing rules and reservations on every
// read.
type TimeSlot struct {
	StartTime  string       `json:"startTime"`
	EndTime    string       `json:"endTime"`
	Price      float64      `json:"price"`
	IsPeakHour bool         `json:"isPeakHour"`
	Status     string       `json:"status"`
	Booking    *BookingInfo `json:"booking,omitempty"`
}

// GenerateSlots derives the bookable slots of one court on one date. An
// unknown court produces an empty list rather than an error so the presenter
// does not need a separate existence check. Store failures surface as
// errors, never as an empty result.
func GenerateSlots(db *gorm.DB, courtID uint, date time.Time) ([]TimeSlot, error) {
	var court models.Court
	if err := db.Where("id = ? AND is_deleted = false", courtID).First(&court).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []TimeSlot{}, nil
		}
		return nil, err
	}

	date = utils.NormalizeDate(date)
	weekday := int(date.Weekday())

	var windows []models.CourtSchedule
	if err := db.
		Where("court_id = ? AND day_of_week = ? AND is_active = true", courtID, weekday).
		Find(&windows).Error; err != nil {
		return nil, err
	}

	slots := buildWindowSlots(windows)
	if len(slots) == 0 {
		return []TimeSlot{}, nil
	}

	var rules []models.PricingRule
	if err := db.
		Where("court_id = ?", courtID).
		Order("start_time ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	applyPricing(slots, rules)

	var reservations []models.Reservation
	if err := db.
		Where("court_id = ? AND reservation_date = ? AND status <> ?",
			courtID, date, models.ReservationCancelled).
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	applyOccupancy(slots, reservations)

	return slots, nil
}

// buildWindowSlots tiles every active window with consecutive fixed-length
// slots, discarding a trailing partial slot, then merges the windows into a
// single ordered, de-duplicated sequence. Overlapping windows can emit the
// exact same range twice.
func buildWindowSlots(windows []models.CourtSchedule) []TimeSlot {
	var slots []TimeSlot
	for _, w := range windows {
		start, err := utils.ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(w.EndTime)
		if err != nil || w.SlotDurationMinutes <= 0 {
			continue
		}
		for m := start; m+w.SlotDurationMinutes <= end; m += w.SlotDurationMinutes {
			slots = append(slots, TimeSlot{
				StartTime: utils.FormatClock(m),
				EndTime:   utils.FormatClock(m + w.SlotDurationMinutes),
				Status:    SlotAvailable,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].EndTime < slots[j].EndTime
	})

	deduped := slots[:0]
	for _, s := range slots {
		if len(deduped) > 0 {
			last := deduped[len(deduped)-1]
			if last.StartTime == s.StartTime && last.EndTime == s.EndTime {
				continue
			}
		}
		deduped = append(deduped, s)
	}
	return deduped
}

// applyPricing stamps each slot with the first rule (by ascending start
// time) whose range contains the slot's start. Slots no rule covers fall
// back to the configured default price and off-peak.
func applyPricing(slots []TimeSlot, rules []models.PricingRule) {
	for i := range slots {
		slots[i].Price = config.AppConfig.DefaultSlotPrice
		slots[i].IsPeakHour = false
		for _, r := range rules {
			if r.StartTime <= slots[i].StartTime && slots[i].StartTime < r.EndTime {
				slots[i].Price = r.Price
				slots[i].IsPeakHour = r.IsPeakHour
				break
			}
		}
	}
}

// applyOccupancy marks every slot that intersects a non-cancelled
// reservation as occupied. Zero-padded "HH:MM" strings compare correctly
// lexicographically, so the overlap check needs no parsing.
func applyOccupancy(slots []TimeSlot, reservations []models.Reservation) {
	for i := range slots {
		for _, r := range reservations {
			if r.StartTime < slots[i].EndTime && r.EndTime > slots[i].StartTime {
				slots[i].Status = SlotOccupied
				slots[i].Booking = &BookingInfo{
					CustomerName:     r.CustomerName,
					BookingReference: r.BookingReference,
				}
				break
			}
		}
	}
}

// GetAvailability returns the generated slot list for a court and date
func GetAvailability(c *fiber.Ctx) error {
	courtID, err := c.ParamsInt("courtId")
	if err != nil || courtID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid court id!", nil)
	}

	dateParam := c.Query("date")
	if dateParam == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Query parameter 'date' is required!", nil)
	}
	date, err := utils.ParseDate(dateParam)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date, expected YYYY-MM-DD!", nil)
	}

	slots, err := GenerateSlots(database.Database.Db, uint(courtID), date)
	if err != nil {
		log.Printf("Error generating slots for court %d: %v", courtID, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load schedule, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Availability fetched!", fiber.Map{
		"courtId":  courtID,
		"date":     date.Format("2006-01-02"),
		"currency": config.AppConfig.Currency,
		"slots":    slots,
	})
}
