package pricingController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"courtbook/database"
	"courtbook/middleware"
	"courtbook/models"
)

// CreatePricingRule adds a time-range price for a court
func CreatePricingRule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPricingRule").(*models.PricingRule)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = false", reqData.CourtID).First(&models.Court{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Court not found!", nil)
		}
		log.Printf("Error fetching court %d: %v", reqData.CourtID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create pricing rule!", nil)
	}

	rule := models.PricingRule{
		CourtID:    reqData.CourtID,
		StartTime:  reqData.StartTime,
		EndTime:    reqData.EndTime,
		Price:      reqData.Price,
		IsPeakHour: reqData.IsPeakHour,
	}

	if err := db.Create(&rule).Error; err != nil {
		log.Printf("Error creating pricing rule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create pricing rule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Pricing rule created!", rule)
}

// ListPricingRules returns all rules for a court in evaluation order
func ListPricingRules(c *fiber.Ctx) error {
	courtID := c.QueryInt("courtId")
	if courtID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Query parameter 'courtId' is required!", nil)
	}

	var rules []models.PricingRule
	if err := database.Database.Db.
		Where("court_id = ?", courtID).
		Order("start_time ASC, id ASC").
		Find(&rules).Error; err != nil {
		log.Printf("Error listing pricing rules for court %d: %v", courtID, err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load pricing rules, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pricing rules fetched!", rules)
}

// DeletePricingRule removes a rule
func DeletePricingRule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid pricing rule id!", nil)
	}

	db := database.Database.Db

	var rule models.PricingRule
	if err := db.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pricing rule not found!", nil)
		}
		log.Printf("Error fetching pricing rule %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete pricing rule!", nil)
	}

	if err := db.Delete(&rule).Error; err != nil {
		log.Printf("Error deleting pricing rule %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete pricing rule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pricing rule deleted!", nil)
}
