package main

import (
	"log"

	"menu-tree-be/internal/config"
	"menu-tree-be/internal/model"
	"menu-tree-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	if cfg.Database.Driver == database.DriverMemory {
		log.Fatal("Error: migrations need a SQL driver, DB_DRIVER is memory")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for menus...")

	if err := db.AutoMigrate(&model.Menu{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
