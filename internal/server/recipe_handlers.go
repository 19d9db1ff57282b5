package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/service"
)

// GetRecipes handles GET /api/recipes. Recipes are returned newest-first.
// Query parameters: tags (repeatable slug, OR semantics), author,
// is_favorited, is_in_shopping_cart. The ownership flags silently match
// nothing for anonymous callers.
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 6)

	filter := repository.RecipeFilter{
		TagSlugs:      tagSlugsFromQuery(c),
		OnlyFavorited: c.QueryBool("is_favorited"),
		OnlyInCart:    c.QueryBool("is_in_shopping_cart"),
	}
	if author := c.QueryInt("author", 0); author > 0 {
		filter.AuthorID = uint(author)
	}

	recipes, err := s.recipeService.List(c.Context(), filter, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"recipes": toRecipeResponses(recipes),
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	recipe, svcErr := s.recipeService.GetByID(c.Context(), id, currentUserID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(toRecipeResponse(recipe))
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.Create(c.Context(), userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecipeResponse(recipe))
}

// UpdateRecipe handles PATCH /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.RecipeInput
	if parseErr := c.BodyParser(&input); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, svcErr := s.recipeService.Update(c.Context(), userID, id, input)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(toRecipeResponse(recipe))
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.recipeService.Delete(c.Context(), userID, id); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart. It
// renders the aggregated shopping list as a plain-text attachment. An empty
// cart still succeeds with an empty file.
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	report, err := s.cartService.Report(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_cart.txt"`)
	return c.SendString(report)
}

// tagSlugsFromQuery collects all repeated ?tags= values, supporting both
// repeated parameters and comma-separated lists.
func tagSlugsFromQuery(c *fiber.Ctx) []string {
	var slugs []string
	args := c.Context().QueryArgs()
	args.VisitAll(func(key, value []byte) {
		if string(key) != "tags" {
			return
		}
		for _, slug := range strings.Split(string(value), ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				slugs = append(slugs, slug)
			}
		}
	})
	return slugs
}
