package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"forkful/internal/models"
)

// GetIngredients handles GET /api/ingredients. With a ?name= query the result
// is a ranked substring search: exact matches first, then prefix matches,
// then the rest, alphabetical within each tier.
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))

	var (
		found []models.Ingredient
		err   error
	)
	if name != "" {
		found, err = s.ingredientRepo.Search(c.Context(), name)
	} else {
		found, err = s.ingredientRepo.List(c.Context())
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]IngredientResponse, 0, len(found))
	for i := range found {
		out = append(out, toIngredientResponse(&found[i]))
	}
	return c.JSON(out)
}

// GetIngredient handles GET /api/ingredients/:id
func (s *Server) GetIngredient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ingredient, svcErr := s.ingredientRepo.GetByID(c.Context(), id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(toIngredientResponse(ingredient))
}
