package clubValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"courtbook/middleware"
	"courtbook/models"
)

var validate = validator.New()

// CreateClub validates a new club
func CreateClub() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.Club)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name == "" {
			errors["name"] = "Club name is required!"
		}
		if reqData.Email != "" {
			if err := validate.Var(reqData.Email, "email"); err != nil {
				errors["email"] = "Email must be a valid address!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedClub", reqData)
		return c.Next()
	}
}

// CreateCourt validates a new court
func CreateCourt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.Court)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ClubID == 0 {
			errors["clubId"] = "Club ID is required!"
		}
		if reqData.Name == "" {
			errors["name"] = "Court name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourt", reqData)
		return c.Next()
	}
}
