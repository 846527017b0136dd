package server

import (
	"strconv"

	"devfolio/internal/cache"
	"devfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Text string `json:"text"`
}

// CreatePost stores a new post authored by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), req.Text)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns posts newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	posts, err := s.postService.List(c.UserContext(), limit, offset, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetPost returns a single post with like details.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	post, err := s.postService.Get(c.UserContext(), uint(id), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes a post the caller authored.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	if err := s.postService.Delete(c.UserContext(), uint(id), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	cache.Invalidate(c.UserContext(), cache.PostsListKey)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Post removed"})
}

// LikePost toggles the caller's like on a post and returns the post with
// updated like details.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	post, err := s.postService.ToggleLike(c.UserContext(), uint(id), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}
