package repository

import (
	"context"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository manages the (user, recipe) favorite toggle table.
type FavoriteRepository interface {
	// Add inserts the pair row. Returns false if it was already present.
	Add(ctx context.Context, userID, recipeID uint) (bool, error)
	// Remove deletes the pair row. Returns false if it was absent.
	Remove(ctx context.Context, userID, recipeID uint) (bool, error)
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
}

// CartRepository manages the (user, recipe) shopping cart toggle table and
// the shopping-list aggregation over it.
type CartRepository interface {
	Add(ctx context.Context, userID, recipeID uint) (bool, error)
	Remove(ctx context.Context, userID, recipeID uint) (bool, error)
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	ShoppingList(ctx context.Context, userID uint) ([]models.ShoppingListItem, error)
}

// SubscriptionRepository manages the (follower, author) toggle table.
type SubscriptionRepository interface {
	Add(ctx context.Context, userID, authorID uint) (bool, error)
	Remove(ctx context.Context, userID, authorID uint) (bool, error)
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID uint) (bool, error) {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	// ON CONFLICT DO NOTHING makes the insert atomic under concurrent
	// identical requests; the unique index is the source of truth.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Recipe").
		Create(&fav)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new shopping cart repository
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Add(ctx context.Context, userID, recipeID uint) (bool, error) {
	item := models.CartItem{UserID: userID, RecipeID: recipeID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Recipe").
		Create(&item)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ShoppingList sums ingredient amounts across every recipe in the user's
// cart, grouped by ingredient identity. Ordered by ingredient id so the
// report is deterministic. An empty cart yields an empty slice.
func (r *cartRepository) ShoppingList(ctx context.Context, userID uint) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Table("ingredient_amounts").
		Select("ingredients.id AS ingredient_id, ingredients.name AS name, ingredients.measure_unit AS measure_unit, SUM(ingredient_amounts.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = ingredient_amounts.recipe_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measure_unit").
		Order("ingredients.id").
		Scan(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Add(ctx context.Context, userID, authorID uint) (bool, error) {
	sub := models.Subscription{UserID: userID, AuthorID: authorID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Author").
		Create(&sub)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateUser(ctx, authorID)
	}
	return result.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Remove(ctx context.Context, userID, authorID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateUser(ctx, authorID)
	}
	return result.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
