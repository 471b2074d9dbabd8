package clubRoutes

import (
	"github.com/gofiber/fiber/v2"

	clubController "courtbook/controllers/club"
	"courtbook/middleware"
	clubValidator "courtbook/validators/club"
)

func SetupClubRoutes(app *fiber.App) {
	clubGroup := app.Group("/clubs")

	clubGroup.Get("/", clubController.ListClubs)
	clubGroup.Get("/courts", clubController.ListCourts)
	clubGroup.Post("/", middleware.JWTMiddleware, clubValidator.CreateClub(), clubController.CreateClub)
	clubGroup.Post("/courts", middleware.JWTMiddleware, clubValidator.CreateCourt(), clubController.CreateCourt)
}
