// Command main runs the demo data seeder for TontineHub.
package main

import (
	"flag"
	"log"

	"tontinehub/internal/config"
	"tontinehub/internal/database"
	"tontinehub/internal/models"
	"tontinehub/internal/seed"

	"gorm.io/gorm"
)

func main() {
	shouldClean := flag.Bool("clean", false, "Clean tontine tables before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		log.Println("Cleaning existing data...")
		for _, model := range []any{
			&models.Transaction{},
			&models.TontineMembership{},
			&models.Tontine{},
			&models.User{},
		} {
			if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				log.Fatalf("❌ Cleanup failed: %v", err)
			}
		}
	}

	if err := seed.DemoData(db); err != nil {
		log.Fatalf("❌ Demo data seeding failed: %v", err)
	}

	log.Println("✅ Seeding complete")
}
