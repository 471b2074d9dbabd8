package main

import (
	"log"

	"courtbook/config"
	"courtbook/database"
	"courtbook/models"
)

// Seeds a demo club with two courts, weekday schedule windows and
// peak/off-peak pricing. Run from the repository root:
//
//	go run ./scripts
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	club := models.Club{
		Name:    "Riverside Padel Club",
		Address: "12 Riverside Way",
		City:    "Valencia",
		Phone:   "+34 600 000 000",
		Email:   "info@riversidepadel.example",
	}
	if err := db.Create(&club).Error; err != nil {
		log.Fatalf("Failed to seed club: %v", err)
	}

	courts := []models.Court{
		{ClubID: club.ID, Name: "Court 1", Surface: "ARTIFICIAL_GRASS", IsIndoor: false},
		{ClubID: club.ID, Name: "Court 2", Surface: "ARTIFICIAL_GRASS", IsIndoor: true},
	}
	if err := db.Create(&courts).Error; err != nil {
		log.Fatalf("Failed to seed courts: %v", err)
	}

	for _, court := range courts {
		// Monday to Friday, 08:00-22:00, 60 minute slots
		for day := 1; day <= 5; day++ {
			window := models.CourtSchedule{
				CourtID:             court.ID,
				DayOfWeek:           day,
				StartTime:           "08:00",
				EndTime:             "22:00",
				SlotDurationMinutes: 60,
				IsActive:            true,
			}
			if err := db.Create(&window).Error; err != nil {
				log.Fatalf("Failed to seed schedule window: %v", err)
			}
		}

		rules := []models.PricingRule{
			{CourtID: court.ID, StartTime: "08:00", EndTime: "17:00", Price: 20, IsPeakHour: false},
			{CourtID: court.ID, StartTime: "17:00", EndTime: "22:00", Price: 30, IsPeakHour: true},
		}
		if err := db.Create(&rules).Error; err != nil {
			log.Fatalf("Failed to seed pricing rules: %v", err)
		}
	}

	log.Printf("Seeded club %q with %d courts", club.Name, len(courts))
}
