package scheduleValidator

import (
	"github.com/gofiber/fiber/v2"

	"courtbook/middleware"
	"courtbook/models"
	"courtbook/utils"
)

// CreateSchedule validates a new schedule window
func CreateSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.CourtSchedule)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourtID == 0 {
			errors["courtId"] = "Court ID is required!"
		}
		if reqData.DayOfWeek < 0 || reqData.DayOfWeek > 6 {
			errors["dayOfWeek"] = "Day of week must be between 0 (Sunday) and 6 (Saturday)!"
		}
		if !utils.IsValidClock(reqData.StartTime) {
			errors["startTime"] = "Start time is required in HH:MM format!"
		}
		if !utils.IsValidClock(reqData.EndTime) {
			errors["endTime"] = "End time is required in HH:MM format!"
		}
		if utils.IsValidClock(reqData.StartTime) && utils.IsValidClock(reqData.EndTime) && reqData.EndTime <= reqData.StartTime {
			errors["endTime"] = "End time must be after start time!"
		}
		if reqData.SlotDurationMinutes <= 0 {
			errors["slotDurationMinutes"] = "Slot duration must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSchedule", reqData)
		return c.Next()
	}
}
