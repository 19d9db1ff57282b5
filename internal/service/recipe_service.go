package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"forkful/internal/config"
	"forkful/internal/models"
	"forkful/internal/repository"

	"github.com/google/uuid"
)

const DefaultMediaDir = "media"

// IngredientAmountInput is one (ingredient, amount) pair of a recipe payload.
type IngredientAmountInput struct {
	IngredientID uint `json:"id"`
	Amount       int  `json:"amount"`
}

// RecipeInput is the payload for creating or updating a recipe. Image is a
// base64 data URI on create; on update an empty Image keeps the stored file.
type RecipeInput struct {
	Name        string                  `json:"name"`
	Text        string                  `json:"text"`
	Image       string                  `json:"image"`
	CookingTime int                     `json:"cooking_time"`
	TagIDs      []uint                  `json:"tags"`
	Ingredients []IngredientAmountInput `json:"ingredients"`
}

// RecipeService provides recipe business logic.
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	mediaDir       string
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(recipeRepo repository.RecipeRepository, tagRepo repository.TagRepository, ingredientRepo repository.IngredientRepository, cfg *config.Config) *RecipeService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		mediaDir:       mediaDir,
	}
}

// Create validates the payload and persists a new recipe with its tags and
// ingredient amounts. Nothing is written on validation failure.
func (s *RecipeService) Create(ctx context.Context, authorID uint, input RecipeInput) (*models.Recipe, error) {
	tags, amounts, err := s.resolveInput(ctx, input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Image) == "" {
		return nil, models.NewValidationError("Image is required")
	}
	imagePath, err := s.saveImage(input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		Image:       imagePath,
		CookingTime: input.CookingTime,
	}
	if err := s.recipeRepo.Create(ctx, recipe, tags, amounts); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(ctx, recipe.ID, authorID)
}

// Update replaces the recipe's fields, tags and ingredient amounts. Only the
// author may update a recipe.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uint, input RecipeInput) (*models.Recipe, error) {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, models.NewForbiddenError("Only the author can edit this recipe")
	}

	tags, amounts, err := s.resolveInput(ctx, input)
	if err != nil {
		return nil, err
	}

	imagePath := existing.Image
	if strings.TrimSpace(input.Image) != "" {
		imagePath, err = s.saveImage(input.Image)
		if err != nil {
			return nil, err
		}
	}

	recipe := &models.Recipe{
		ID:          recipeID,
		AuthorID:    existing.AuthorID,
		Name:        input.Name,
		Text:        input.Text,
		Image:       imagePath,
		CookingTime: input.CookingTime,
	}
	if err := s.recipeRepo.Update(ctx, recipe, tags, amounts); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(ctx, recipeID, userID)
}

// Delete removes the recipe and everything hanging off it. Only the author
// may delete a recipe.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID {
		return models.NewForbiddenError("Only the author can delete this recipe")
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

// GetByID returns a single recipe annotated for the current user.
func (s *RecipeService) GetByID(ctx context.Context, recipeID, currentUserID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, recipeID, currentUserID)
}

// List returns recipes newest-first, filtered and annotated for the current
// user.
func (s *RecipeService) List(ctx context.Context, filter repository.RecipeFilter, limit, offset int, currentUserID uint) ([]models.Recipe, error) {
	return s.recipeRepo.List(ctx, filter, limit, offset, currentUserID)
}

// resolveInput validates the payload and resolves tag and ingredient IDs to
// rows, so a recipe can never reference a tag or ingredient that does not
// exist.
func (s *RecipeService) resolveInput(ctx context.Context, input RecipeInput) ([]models.Tag, []models.IngredientAmount, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, nil, models.NewValidationError("Name is required")
	}
	if len(name) > models.MaxRecipeNameLength {
		return nil, nil, models.NewValidationError(fmt.Sprintf("Name must be at most %d characters", models.MaxRecipeNameLength))
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, nil, models.NewValidationError("Text is required")
	}
	if input.CookingTime < 1 {
		return nil, nil, models.NewValidationError("Cooking time must be at least 1 minute")
	}
	if len(input.TagIDs) == 0 {
		return nil, nil, models.NewValidationError("At least one tag is required")
	}
	if len(input.Ingredients) == 0 {
		return nil, nil, models.NewValidationError("At least one ingredient is required")
	}

	seen := make(map[uint]bool, len(input.Ingredients))
	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if item.Amount < 1 {
			return nil, nil, models.NewValidationError("Ingredient amount must be at least 1")
		}
		if seen[item.IngredientID] {
			return nil, nil, models.NewValidationError("Duplicate ingredient in recipe")
		}
		seen[item.IngredientID] = true
		ingredientIDs = append(ingredientIDs, item.IngredientID)
	}

	tagIDs := dedupeIDs(input.TagIDs)
	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, models.NewValidationError("Unknown tag")
	}

	ingredients, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(ingredientIDs) {
		return nil, nil, models.NewValidationError("Unknown ingredient")
	}

	amounts := make([]models.IngredientAmount, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		amounts = append(amounts, models.IngredientAmount{
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		})
	}
	return tags, amounts, nil
}

// saveImage decodes a "data:image/...;base64,..." URI and writes it under the
// media directory, returning the stored relative path.
func (s *RecipeService) saveImage(dataURI string) (string, error) {
	mimeType, payload, ok := strings.Cut(dataURI, ";base64,")
	if !ok || !strings.HasPrefix(mimeType, "data:image/") {
		return "", models.NewValidationError("Image must be a base64 data URI")
	}
	ext := imageExtension(strings.TrimPrefix(mimeType, "data:"))
	if ext == "" {
		return "", models.NewValidationError("Unsupported image type")
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", models.NewValidationError("Invalid base64 image data")
	}
	if len(content) == 0 {
		return "", models.NewValidationError("Empty image data")
	}

	rel := filepath.ToSlash(filepath.Join("images", uuid.NewString()+ext))
	abs := filepath.Join(s.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(abs, content, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}
	return rel, nil
}

func imageExtension(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
