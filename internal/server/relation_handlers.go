package server

import (
	"github.com/gofiber/fiber/v2"
)

// AddFavorite handles POST /api/recipes/:id/favorite
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, svcErr := s.favoriteService.Add(c.Context(), userID, recipeID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toReducedRecipeResponse(recipe))
}

// RemoveFavorite handles DELETE /api/recipes/:id/favorite
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.favoriteService.Remove(c.Context(), userID, recipeID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddToCart handles POST /api/recipes/:id/shopping_cart
func (s *Server) AddToCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, svcErr := s.cartService.Add(c.Context(), userID, recipeID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toReducedRecipeResponse(recipe))
}

// RemoveFromCart handles DELETE /api/recipes/:id/shopping_cart
func (s *Server) RemoveFromCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.cartService.Remove(c.Context(), userID, recipeID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
