package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"courtbook/config"
	"courtbook/database"
	authRoutes "courtbook/routers/authRoutes"
	availabilityRoutes "courtbook/routers/availabilityRoutes"
	bookingRoutes "courtbook/routers/bookingRoutes"
	clubRoutes "courtbook/routers/clubRoutes"
	scheduleRoutes "courtbook/routers/scheduleRoutes"
	"courtbook/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	clubRoutes.SetupClubRoutes(app)
	availabilityRoutes.SetupAvailabilityRoutes(app)
	bookingRoutes.SetupBookingRoutes(app)
	scheduleRoutes.SetupScheduleRoutes(app)

	// Background maintenance (marks finished reservations as completed)
	utils.InitializeReservationScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
