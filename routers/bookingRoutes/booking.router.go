package bookingRoutes

import (
	"github.com/gofiber/fiber/v2"

	bookingController "courtbook/controllers/booking"
	"courtbook/middleware"
	bookingValidator "courtbook/validators/booking"
)

func SetupBookingRoutes(app *fiber.App) {
	bookingGroup := app.Group("/bookings")

	bookingGroup.Post("/", bookingValidator.CreateBooking(), bookingController.CreateBooking)
	bookingGroup.Get("/reference/:reference", bookingController.GetBookingByReference)
	bookingGroup.Get("/", middleware.JWTMiddleware, bookingController.ListBookings)
	bookingGroup.Patch("/:id/cancel", bookingController.CancelBooking)
}
