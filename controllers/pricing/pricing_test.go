package pricingController

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"courtbook/config"
	"courtbook/database"
	"courtbook/models"
)

func init() {
	config.AppConfig = &config.Config{DefaultSlotPrice: 10.0, Currency: "EUR", JWTKey: "test-secret"}
}

func setupPricingApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Club{}, &models.Court{}, &models.PricingRule{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/admin/pricing", func(c *fiber.Ctx) error {
		rule := new(models.PricingRule)
		if err := c.BodyParser(rule); err != nil {
			return middlewareBadRequest(c)
		}
		c.Locals("validatedPricingRule", rule)
		return c.Next()
	}, CreatePricingRule)
	app.Get("/admin/pricing", ListPricingRules)
	app.Delete("/admin/pricing/:id", DeletePricingRule)

	return app, db
}

func middlewareBadRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": false})
}

func createTestCourt(t *testing.T, db *gorm.DB) models.Court {
	t.Helper()
	club := models.Club{Name: "Test Club"}
	require.NoError(t, db.Create(&club).Error)
	court := models.Court{ClubID: club.ID, Name: "Court 1", Surface: "clay"}
	require.NoError(t, db.Create(&court).Error)
	return court
}

func TestCreatePricingRuleEndpoint(t *testing.T) {
	app, db := setupPricingApp(t)
	court := createTestCourt(t, db)

	body, _ := json.Marshal(fiber.Map{
		"courtId":    court.ID,
		"startTime":  "17:00",
		"endTime":    "22:00",
		"price":      30.0,
		"isPeakHour": true,
	})
	req := httptest.NewRequest("POST", "/admin/pricing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.PricingRule{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePricingRuleUnknownCourt(t *testing.T) {
	app, _ := setupPricingApp(t)

	body, _ := json.Marshal(fiber.Map{
		"courtId":   999,
		"startTime": "08:00",
		"endTime":   "17:00",
		"price":     20.0,
	})
	req := httptest.NewRequest("POST", "/admin/pricing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListPricingRulesOrder(t *testing.T) {
	app, db := setupPricingApp(t)
	court := createTestCourt(t, db)

	// Inserted out of order; listing must come back sorted by start time.
	require.NoError(t, db.Create(&models.PricingRule{CourtID: court.ID, StartTime: "17:00", EndTime: "22:00", Price: 30, IsPeakHour: true}).Error)
	require.NoError(t, db.Create(&models.PricingRule{CourtID: court.ID, StartTime: "08:00", EndTime: "17:00", Price: 20}).Error)

	req := httptest.NewRequest("GET", "/admin/pricing?courtId=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data []models.PricingRule `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Data, 2)
	assert.Equal(t, "08:00", payload.Data[0].StartTime)
	assert.Equal(t, "17:00", payload.Data[1].StartTime)
}

func TestDeletePricingRuleEndpoint(t *testing.T) {
	app, db := setupPricingApp(t)
	court := createTestCourt(t, db)

	rule := models.PricingRule{CourtID: court.ID, StartTime: "08:00", EndTime: "17:00", Price: 20}
	require.NoError(t, db.Create(&rule).Error)

	req := httptest.NewRequest("DELETE", "/admin/pricing/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.PricingRule{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/admin/pricing/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
