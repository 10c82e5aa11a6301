package main

import (
	"context"
	"log"

	"menu-tree-be/internal/bootstrap"
	"menu-tree-be/internal/config"
	"menu-tree-be/internal/seed"
	"menu-tree-be/pkg/database"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	var db *gorm.DB
	if cfg.Database.Driver != database.DriverMemory {
		var err error
		db, err = database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection, cfg.Database.LogLevel)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	}

	container, err := bootstrap.NewContainer(db, cfg)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	color.Cyan("🌱 Seeding %d menus...", seed.Count(seed.DemoMenus))

	res, err := seed.Run(context.Background(), container.MenuService, seed.DemoMenus)
	if err != nil {
		color.Red("❌ Seeding failed after %d menus: %v", res.Created, err)
		return
	}
	if res.Skipped {
		color.Yellow("⚠️  Menus already exist, skipping seed")
		return
	}
	color.Green("✅ Created %d menus", res.Created)
}
