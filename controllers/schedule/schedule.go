package scheduleController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"courtbook/database"
	"courtbook/middleware"
	"courtbook/models"
)

// CreateSchedule adds a recurring weekly window for a court
func CreateSchedule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSchedule").(*models.CourtSchedule)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Court must exist before a window can reference it
	if err := db.Where("id = ? AND is_deleted = false", reqData.CourtID).First(&models.Court{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Court not found!", nil)
		}
		log.Printf("Error fetching court %d: %v", reqData.CourtID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create schedule window!", nil)
	}

	schedule := models.CourtSchedule{
		CourtID:             reqData.CourtID,
		DayOfWeek:           reqData.DayOfWeek,
		StartTime:           reqData.StartTime,
		EndTime:             reqData.EndTime,
		SlotDurationMinutes: reqData.SlotDurationMinutes,
		IsActive:            true,
	}

	if err := db.Create(&schedule).Error; err != nil {
		log.Printf("Error creating schedule window: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create schedule window!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Schedule window created!", schedule)
}

// ListSchedules returns all windows for a court
func ListSchedules(c *fiber.Ctx) error {
	courtID := c.QueryInt("courtId")
	if courtID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Query parameter 'courtId' is required!", nil)
	}

	var schedules []models.CourtSchedule
	if err := database.Database.Db.
		Where("court_id = ?", courtID).
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		log.Printf("Error listing schedules for court %d: %v", courtID, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load schedule windows, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule windows fetched!", schedules)
}

// ToggleSchedule activates or deactivates a window. Deactivation only
// affects future slot generation; reservations booked while the window was
// active are never touched.
func ToggleSchedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	reqData := new(struct {
		IsActive bool `json:"isActive"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var schedule models.CourtSchedule
	if err := db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule window not found!", nil)
		}
		log.Printf("Error fetching schedule %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update schedule window!", nil)
	}

	if err := db.Model(&schedule).Update("is_active", reqData.IsActive).Error; err != nil {
		log.Printf("Error toggling schedule %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update schedule window!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule window updated!", schedule)
}

// DeleteSchedule removes a window. Like deactivation this never cancels
// existing reservations.
func DeleteSchedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	db := database.Database.Db

	var schedule models.CourtSchedule
	if err := db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule window not found!", nil)
		}
		log.Printf("Error fetching schedule %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete schedule window!", nil)
	}

	if err := db.Delete(&schedule).Error; err != nil {
		log.Printf("Error deleting schedule %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete schedule window!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule window deleted!", nil)
}
