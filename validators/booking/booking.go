package bookingValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	bookingController "courtbook/controllers/booking"
	"courtbook/middleware"
	"courtbook/utils"
)

var validate = validator.New()

// CreateBooking validates a booking request
func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(bookingController.BookingRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ClubID == 0 {
			errors["clubId"] = "Club ID is required!"
		}
		if reqData.CourtID == 0 {
			errors["courtId"] = "Court ID is required!"
		}
		if _, err := utils.ParseDate(reqData.Date); err != nil {
			errors["date"] = "Date is required in YYYY-MM-DD format!"
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
		if reqData.CustomerName == "" {
			errors["customerName"] = "Customer name is required!"
		}
		if err := validate.Var(reqData.CustomerEmail, "required,email"); err != nil {
			errors["customerEmail"] = "A valid customer email is required!"
		}
		if reqData.CustomerPhone == "" {
			errors["customerPhone"] = "Customer phone is required!"
		}
		if reqData.IdempotencyKey == "" {
			errors["idempotencyKey"] = "Idempotency key is required!"
		}
		if len(reqData.IdempotencyKey) > 64 {
			errors["idempotencyKey"] = "Idempotency key must be at most 64 characters!"
		}
		if reqData.QuotedPrice < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBooking", reqData)
		return c.Next()
	}
}
