package availabilityRoutes

import (
	"github.com/gofiber/fiber/v2"

	availabilityController "courtbook/controllers/availability"
)

func SetupAvailabilityRoutes(app *fiber.App) {
	availabilityGroup := app.Group("/availability")

	availabilityGroup.Get("/:courtId", availabilityController.GetAvailability)
}
