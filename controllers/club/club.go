package clubController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"courtbook/database"
	"courtbook/middleware"
	"courtbook/models"
)

// CreateClub registers a new club
func CreateClub(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedClub").(*models.Club)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	club := models.Club{
		Name:    reqData.Name,
		Address: reqData.Address,
		City:    reqData.City,
		Phone:   reqData.Phone,
		Email:   reqData.Email,
	}

	if err := database.Database.Db.Create(&club).Error; err != nil {
		log.Printf("Error creating club: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create club!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Club created!", club)
}

// ListClubs returns all clubs
func ListClubs(c *fiber.Ctx) error {
	var clubs []models.Club
	if err := database.Database.Db.Where("is_deleted = false").Find(&clubs).Error; err != nil {
		log.Printf("Error listing clubs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load clubs, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Clubs fetched!", clubs)
}

// CreateCourt registers a new court under a club
func CreateCourt(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourt").(*models.Court)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = false", reqData.ClubID).First(&models.Club{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Club not found!", nil)
		}
		log.Printf("Error fetching club %d: %v", reqData.ClubID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create court!", nil)
	}

	court := models.Court{
		ClubID:   reqData.ClubID,
		Name:     reqData.Name,
		Surface:  reqData.Surface,
		IsIndoor: reqData.IsIndoor,
	}

	if err := db.Create(&court).Error; err != nil {
		log.Printf("Error creating court: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create court!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Court created!", court)
}

// ListCourts returns courts, optionally filtered by club
func ListCourts(c *fiber.Ctx) error {
	db := database.Database.Db
	query := db.Where("is_deleted = false")

	if clubID := c.QueryInt("clubId"); clubID > 0 {
		query = query.Where("club_id = ?", clubID)
	}

	var courts []models.Court
	if err := query.Find(&courts).Error; err != nil {
		log.Printf("Error listing courts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load courts, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courts fetched!", courts)
}
