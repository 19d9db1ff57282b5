package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a Server against an in-memory database with no Redis
// and no metrics. Rate limiting is disabled via APP_ENV=test.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test-secret",
		MediaDir:  t.TempDir(),
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	s := &Server{
		config:           cfg,
		db:               db,
		userRepo:         userRepo,
		tagRepo:          tagRepo,
		ingredientRepo:   ingredientRepo,
		recipeRepo:       recipeRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.recipeService = service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, cfg)
	s.favoriteService = service.NewFavoriteService(favoriteRepo, recipeRepo)
	s.cartService = service.NewCartService(cartRepo, recipeRepo)
	s.subscriptionService = service.NewSubscriptionService(subscriptionRepo, userRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupRoutes(app)

	return s, app
}

// createUser inserts a user with the password "password123" and returns the
// user and a valid token for them.
func createUser(t *testing.T, s *Server, username string) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	if err := s.db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return user, token
}

func createTag(t *testing.T, s *Server, name, color, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, Slug: slug}
	if err := s.db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to create tag %s: %v", name, err)
	}
	return tag
}

func createIngredient(t *testing.T, s *Server, name, unit string) *models.Ingredient {
	t.Helper()
	ing := &models.Ingredient{Name: name, MeasureUnit: unit}
	if err := s.db.Create(ing).Error; err != nil {
		t.Fatalf("Failed to create ingredient %s: %v", name, err)
	}
	return ing
}

// doRequest sends a JSON request through the Fiber app. A non-empty token is
// attached as a Bearer Authorization header.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}
