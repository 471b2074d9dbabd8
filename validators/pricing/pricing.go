package pricingValidator

import (
	"github.com/gofiber/fiber/v2"

	"courtbook/middleware"
	"courtbook/models"
	"courtbook/utils"
)

// CreatePricingRule validates a new pricing rule
func CreatePricingRule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.PricingRule)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourtID == 0 {
			errors["courtId"] = "Court ID is required!"
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
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPricingRule", reqData)
		return c.Next()
	}
}
