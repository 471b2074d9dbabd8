package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "courtbook/controllers/auth"
	authValidator "courtbook/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
}
