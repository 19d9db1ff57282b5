// Command main imports the ingredient catalog and tag fixtures for Forkful.
package main

import (
	"flag"
	"log"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/seed"
)

func main() {
	csvPath := flag.String("ingredients", "data/ingredients.csv", "Path to the ingredients CSV file")
	withTags := flag.Bool("tags", true, "Also create the default tag fixture")
	flag.Parse()

	log.Println("📦 Fixture Loader")
	log.Println("=================")

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

	if *withTags {
		tags, err := seed.SeedTags(db)
		if err != nil {
			log.Fatalf("❌ Tag fixture failed: %v", err)
		}
		log.Printf("✓ %d tags available", len(tags))
	}

	inserted, err := seed.LoadIngredientsCSV(db, *csvPath)
	if err != nil {
		log.Fatalf("❌ Ingredient import failed: %v", err)
	}
	log.Printf("✓ %d new ingredients imported from %s", inserted, *csvPath)
}
