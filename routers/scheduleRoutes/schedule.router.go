package scheduleRoutes

import (
	"github.com/gofiber/fiber/v2"

	pricingController "courtbook/controllers/pricing"
	scheduleController "courtbook/controllers/schedule"
	"courtbook/middleware"
	pricingValidator "courtbook/validators/pricing"
	scheduleValidator "courtbook/validators/schedule"
)

func SetupScheduleRoutes(app *fiber.App) {
	scheduleGroup := app.Group("/admin/schedules", middleware.JWTMiddleware)

	scheduleGroup.Post("/", scheduleValidator.CreateSchedule(), scheduleController.CreateSchedule)
	scheduleGroup.Get("/", scheduleController.ListSchedules)
	scheduleGroup.Patch("/:id/toggle", scheduleController.ToggleSchedule)
	scheduleGroup.Delete("/:id", scheduleController.DeleteSchedule)

	pricingGroup := app.Group("/admin/pricing", middleware.JWTMiddleware)

	pricingGroup.Post("/", pricingValidator.CreatePricingRule(), pricingController.CreatePricingRule)
	pricingGroup.Get("/", pricingController.ListPricingRules)
	pricingGroup.Delete("/:id", pricingController.DeletePricingRule)
}
