// Command migrate applies the database schema explicitly. Useful in
// production where the server does not automigrate on startup.
package main

import (
	"log"

	"tontinehub/internal/config"
	"tontinehub/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("migrations applied")
}
