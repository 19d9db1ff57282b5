package server

import (
	"github.com/gofiber/fiber/v2"

	"forkful/internal/cache"
	"forkful/internal/models"
)

// GetTags handles GET /api/tags. The tag set changes rarely, so the whole
// list is served cache-aside.
func (s *Server) GetTags(c *fiber.Ctx) error {
	var tags []models.Tag
	err := cache.Aside(c.Context(), cache.TagsKey, &tags, cache.TagsTTL, func() error {
		var fetchErr error
		tags, fetchErr = s.tagRepo.List(c.Context())
		return fetchErr
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResponse(&tags[i]))
	}
	return c.JSON(out)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, svcErr := s.tagRepo.GetByID(c.Context(), id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(toTagResponse(tag))
}
