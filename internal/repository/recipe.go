package repository

import (
	"context"
	"errors"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings. Zero values disable each filter so
// filters compose conjunctively.
type RecipeFilter struct {
	TagSlugs      []string
	OnlyFavorited bool
	OnlyInCart    bool
	AuthorID      uint
}

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe, tags []models.Tag, amounts []models.IngredientAmount) error
	Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, amounts []models.IngredientAmount) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]models.Recipe, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create persists the recipe, its ingredient amounts and its tag links as a
// single transaction so a recipe is never visible with partial ingredients
// or tags.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, tags []models.Tag, amounts []models.IngredientAmount) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Create(recipe).Error; err != nil {
			return err
		}
		for i := range amounts {
			amounts[i].RecipeID = recipe.ID
		}
		if err := tx.Omit("Ingredient").Create(&amounts).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update saves the recipe fields and replaces the entire ingredient-amount
// set and tag set atomically.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, amounts []models.IngredientAmount) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).
			Select("name", "text", "image", "cooking_time").
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"image":        recipe.Image,
				"cooking_time": recipe.CookingTime,
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		for i := range amounts {
			amounts[i].ID = 0
			amounts[i].RecipeID = recipe.ID
		}
		if err := tx.Omit("Ingredient").Create(&amounts).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe models.Recipe

	fetch := func() error {
		return r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			Preload("Tags").
			Preload("Ingredients.Ingredient").
			First(&recipe, id).Error
	}

	var err error
	if currentUserID == 0 {
		// The anonymous projection carries no per-user fields, so it is safe
		// to serve from cache.
		err = cache.Aside(ctx, cache.RecipeKey(id), &recipe, cache.RecipeTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	q := r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")
	q = r.applyFilter(q, filter, currentUserID)
	if err := q.
		Order("recipes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// applyFilter narrows the base query by the caller-supplied flags. Each
// filter is a no-op when its parameter is absent; multiple filters compose
// with AND. For anonymous callers the favorited/in-cart filters match
// nothing rather than erroring.
func (r *recipeRepository) applyFilter(db *gorm.DB, filter RecipeFilter, currentUserID uint) *gorm.DB {
	if len(filter.TagSlugs) > 0 {
		db = db.Where(
			"recipes.id IN (SELECT recipe_tags.recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug IN ?)",
			filter.TagSlugs,
		)
	}
	if filter.OnlyFavorited {
		if currentUserID == 0 {
			db = db.Where("1 = 0")
		} else {
			db = db.Where(
				"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)",
				currentUserID,
			)
		}
	}
	if filter.OnlyInCart {
		if currentUserID == 0 {
			db = db.Where("1 = 0")
		} else {
			db = db.Where(
				"EXISTS(SELECT 1 FROM cart_items WHERE cart_items.recipe_id = recipes.id AND cart_items.user_id = ?)",
				currentUserID,
			)
		}
	}
	if filter.AuthorID != 0 {
		db = db.Where("recipes.author_id = ?", filter.AuthorID)
	}
	return db
}

// applyRecipeDetails adds subqueries to fetch favorited/in-cart status for
// the current requesting user in a single query.
func (r *recipeRepository) applyRecipeDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"recipes.*, "+
				"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited, "+
				"EXISTS(SELECT 1 FROM cart_items WHERE cart_items.recipe_id = recipes.id AND cart_items.user_id = ?) AS is_in_shopping_cart",
			currentUserID, currentUserID)
	}
	return db.Select("recipes.*, FALSE AS is_favorited, FALSE AS is_in_shopping_cart")
}
