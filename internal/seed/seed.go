// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"forkful/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
	// SkipBcrypt stores a plain-text password. Dev fast mode only, never
	// useful outside seeding.
	SkipBcrypt bool
}

var measureUnits = []string{"g", "kg", "ml", "l", "pcs", "tbsp", "tsp", "cup", "pinch"}

// Seed populates the database with demo data: users, tags, ingredients and
// recipes with favorites, carts and subscriptions sprinkled on top.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	tags, err := SeedTags(db)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	log.Printf("✓ %d tags available", len(tags))

	ingredients, err := createIngredients(db)
	if err != nil {
		return fmt.Errorf("failed to create ingredients: %w", err)
	}
	log.Printf("✓ %d ingredients available", len(ingredients))

	users, err := createUsers(db, opts)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	recipes, err := createRecipes(db, users, tags, ingredients, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("✓ %d recipes created", len(recipes))

	if err := createRelations(db, users, recipes); err != nil {
		return fmt.Errorf("failed to create relations: %w", err)
	}
	log.Println("✓ favorites, carts and subscriptions created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE subscriptions, cart_items, favorites, ingredient_amounts, recipe_tags, recipes, ingredients, tags, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, opts Options) ([]models.User, error) {
	password := "password123"
	stored := password
	if !opts.SkipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		stored = string(hashed)
	}

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		person := gofakeit.Person()
		users = append(users, models.User{
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:     gofakeit.Email(),
			FirstName: person.FirstName,
			LastName:  person.LastName,
			Password:  stored,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createIngredients(db *gorm.DB) ([]models.Ingredient, error) {
	names := map[string]bool{}
	var ingredients []models.Ingredient
	for len(ingredients) < 60 {
		var name string
		switch gofakeit.Number(0, 3) {
		case 0:
			name = gofakeit.Vegetable()
		case 1:
			name = gofakeit.Fruit()
		case 2:
			name = gofakeit.Lunch()
		default:
			name = gofakeit.Breakfast()
		}
		name = strings.ToLower(name)
		if names[name] {
			continue
		}
		names[name] = true
		ingredients = append(ingredients, models.Ingredient{
			Name:        name,
			MeasureUnit: measureUnits[gofakeit.Number(0, len(measureUnits)-1)],
		})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredients).Error; err != nil {
		return nil, err
	}

	var all []models.Ingredient
	if err := db.Order("id").Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

func createRecipes(db *gorm.DB, users []models.User, tags []models.Tag, ingredients []models.Ingredient, count int) ([]models.Recipe, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	recipes := make([]models.Recipe, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		recipe := models.Recipe{
			AuthorID:    author.ID,
			Name:        gofakeit.Dinner(),
			Text:        gofakeit.Paragraph(1, 3, 8, "\n"),
			Image:       fmt.Sprintf("images/%s.jpg", gofakeit.UUID()),
			CookingTime: gofakeit.Number(5, 180),
			CreatedAt:   time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Omit("Tags", "Ingredients", "Author").Create(&recipe).Error; err != nil {
			return nil, err
		}

		picked := r.Perm(len(tags))[:1+r.Intn(2)]
		recipeTags := make([]models.Tag, 0, len(picked))
		for _, idx := range picked {
			recipeTags = append(recipeTags, tags[idx])
		}
		if err := db.Model(&recipe).Association("Tags").Replace(recipeTags); err != nil {
			return nil, err
		}

		numIngredients := 2 + r.Intn(5)
		for _, idx := range r.Perm(len(ingredients))[:numIngredients] {
			amount := models.IngredientAmount{
				RecipeID:     recipe.ID,
				IngredientID: ingredients[idx].ID,
				Amount:       gofakeit.Number(1, 500),
			}
			if err := db.Omit("Ingredient").Create(&amount).Error; err != nil {
				return nil, err
			}
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func createRelations(db *gorm.DB, users []models.User, recipes []models.Recipe) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, user := range users {
		for _, recipe := range recipes {
			if r.Intn(5) == 0 {
				fav := models.Favorite{UserID: user.ID, RecipeID: recipe.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit("User", "Recipe").Create(&fav).Error; err != nil {
					return err
				}
			}
			if r.Intn(8) == 0 {
				item := models.CartItem{UserID: user.ID, RecipeID: recipe.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit("User", "Recipe").Create(&item).Error; err != nil {
					return err
				}
			}
		}
		for _, author := range users {
			if author.ID != user.ID && r.Intn(4) == 0 {
				sub := models.Subscription{UserID: user.ID, AuthorID: author.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit("User", "Author").Create(&sub).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
