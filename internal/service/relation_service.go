package service

import (
	"context"
	"fmt"
	"strings"

	"forkful/internal/models"
	"forkful/internal/repository"
)

// FavoriteService provides favorite toggle business logic.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

// NewFavoriteService returns a new FavoriteService.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

// Add favorites the recipe for the user and returns the recipe. Favoriting a
// recipe twice is an error.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	inserted, err := s.favoriteRepo.Add(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewAlreadyExistsError("Recipe is already in favorites")
	}
	recipe.IsFavorited = true
	return recipe, nil
}

// Remove unfavorites the recipe. Removing a recipe that was never favorited
// is an error.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	removed, err := s.favoriteRepo.Remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Recipe is not in favorites")
	}
	return nil
}

// CartService provides shopping cart business logic, including the aggregated
// shopping list report.
type CartService struct {
	cartRepo   repository.CartRepository
	recipeRepo repository.RecipeRepository
}

// NewCartService returns a new CartService.
func NewCartService(cartRepo repository.CartRepository, recipeRepo repository.RecipeRepository) *CartService {
	return &CartService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
	}
}

// Add puts the recipe into the user's cart and returns the recipe. Adding a
// recipe twice is an error.
func (s *CartService) Add(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	inserted, err := s.cartRepo.Add(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewAlreadyExistsError("Recipe is already in the shopping cart")
	}
	recipe.IsInShoppingCart = true
	return recipe, nil
}

// Remove takes the recipe out of the user's cart. Removing a recipe that is
// not in the cart is an error.
func (s *CartService) Remove(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	removed, err := s.cartRepo.Remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Recipe is not in the shopping cart")
	}
	return nil
}

// Report renders the user's aggregated shopping list as plain text, one line
// per distinct ingredient with the summed amount. An empty cart yields an
// empty report.
func (s *CartService) Report(ctx context.Context, userID uint) (string, error) {
	items, err := s.cartRepo.ShoppingList(ctx, userID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%d) %s\n", item.Name, item.Total, item.MeasureUnit)
	}
	return b.String(), nil
}

// SubscriptionService provides author subscription business logic.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

// NewSubscriptionService returns a new SubscriptionService.
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// Subscribe makes the user follow the author and returns the author annotated
// with their recipes. Self-subscription and double subscription are errors.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint) (*models.User, error) {
	if userID == authorID {
		return nil, models.NewValidationError("Cannot subscribe to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	inserted, err := s.subscriptionRepo.Add(ctx, userID, authorID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewAlreadyExistsError("Already subscribed to this author")
	}
	return s.userRepo.GetAuthorWithRecipes(ctx, authorID, userID)
}

// Unsubscribe stops following the author. Unsubscribing from yourself or from
// an author you never followed is an error.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if userID == authorID {
		return models.NewValidationError("Cannot unsubscribe from yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return err
	}
	removed, err := s.subscriptionRepo.Remove(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Not subscribed to this author")
	}
	return nil
}

// List returns the authors the user follows, each with their recipes
// newest-first. recipesLimit > 0 caps the embedded recipes per author.
func (s *SubscriptionService) List(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]models.User, error) {
	authors, err := s.userRepo.GetSubscribedAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if recipesLimit > 0 {
		for i := range authors {
			if len(authors[i].Recipes) > recipesLimit {
				authors[i].Recipes = authors[i].Recipes[:recipesLimit]
			}
		}
	}
	return authors, nil
}
