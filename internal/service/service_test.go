package service

import (
	"context"
	"testing"

	"forkful/internal/database"
	"forkful/internal/models"
	"forkful/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

type testFixtures struct {
	db     *gorm.DB
	author *models.User
	viewer *models.User
	tag    *models.Tag
	flour  *models.Ingredient
	sugar  *models.Ingredient
}

func setupFixtures(t *testing.T) *testFixtures {
	t.Helper()
	db := setupTestDB(t)
	f := &testFixtures{db: db}

	f.author = &models.User{Username: "author", Email: "author@example.com", Password: "hash"}
	f.viewer = &models.User{Username: "viewer", Email: "viewer@example.com", Password: "hash"}
	f.tag = &models.Tag{Name: "Dinner", Color: "#8775D2", Slug: "dinner"}
	f.flour = &models.Ingredient{Name: "flour", MeasureUnit: "g"}
	f.sugar = &models.Ingredient{Name: "sugar", MeasureUnit: "g"}
	for _, record := range []any{f.author, f.viewer, f.tag, f.flour, f.sugar} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("Failed to create fixture: %v", err)
		}
	}
	return f
}

func (f *testFixtures) createRecipe(t *testing.T, name string, amounts []models.IngredientAmount) *models.Recipe {
	t.Helper()
	repo := repository.NewRecipeRepository(f.db)
	recipe := &models.Recipe{
		AuthorID:    f.author.ID,
		Name:        name,
		Text:        "Instructions for " + name,
		Image:       "images/" + name + ".jpg",
		CookingTime: 30,
	}
	if err := repo.Create(context.Background(), recipe, []models.Tag{*f.tag}, amounts); err != nil {
		t.Fatalf("Failed to create recipe %s: %v", name, err)
	}
	return recipe
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*models.AppError)
	if !ok {
		t.Fatalf("Expected *models.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}
