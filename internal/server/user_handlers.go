package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	currentUserID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{
		"users":  out,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	user, svcErr := s.userService.GetProfile(c.Context(), id, currentUserID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(toUserResponse(user))
}

// GetSubscriptions handles GET /api/users/subscriptions. Each followed author
// is returned with their recipes newest-first; recipes_limit caps how many
// recipes get embedded per author.
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)
	recipesLimit := c.QueryInt("recipes_limit", 0)

	authors, err := s.subscriptionService.List(c.Context(), userID, p.Limit, p.Offset, recipesLimit)
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]UserWithRecipesResponse, 0, len(authors))
	for i := range authors {
		out = append(out, toUserWithRecipesResponse(&authors[i]))
	}
	return c.JSON(fiber.Map{
		"subscriptions": out,
		"limit":         p.Limit,
		"offset":        p.Offset,
	})
}

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	author, svcErr := s.subscriptionService.Subscribe(c.Context(), userID, authorID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserWithRecipesResponse(author))
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.subscriptionService.Unsubscribe(c.Context(), userID, authorID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
