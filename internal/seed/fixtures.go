package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"forkful/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	{Name: "Dessert", Color: "#F9A62B", Slug: "dessert"},
}

// SeedTags inserts the fixed tag fixture, skipping tags that already exist.
func SeedTags(db *gorm.DB) ([]models.Tag, error) {
	tags := make([]models.Tag, len(defaultTags))
	copy(tags, defaultTags)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
		return nil, err
	}

	var all []models.Tag
	if err := db.Order("id").Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

// LoadIngredientsCSV imports the ingredient catalog from a CSV file with
// "name,measure_unit" rows. Rows already present are skipped, so the import
// is idempotent. Returns the number of rows inserted.
func LoadIngredientsCSV(db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	inserted := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, fmt.Errorf("read %s: %w", path, err)
		}
		line++

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			log.Printf("⚠️  skipping row %d: empty name or measure unit", line)
			continue
		}

		ingredient := models.Ingredient{Name: name, MeasureUnit: unit}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient)
		if result.Error != nil {
			return inserted, fmt.Errorf("insert %q: %w", name, result.Error)
		}
		if result.RowsAffected > 0 {
			inserted++
		}
	}
	return inserted, nil
}
