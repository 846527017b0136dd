package server

import (
	"devfolio/internal/models"
	"devfolio/internal/service"
	"devfolio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles account creation. Responds 201 with a token and the
// created user on success.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	violations := validation.Fields(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}, validation.RuleSet{
		"name":     validation.Required("Name"),
		"email":    {Tag: "required,email", Message: "A valid email is required"},
		"password": {Tag: "required,min=6", Message: "Password must be at least 6 characters"},
	})
	if len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": violations})
	}

	user, token, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login exchanges credentials for a token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	violations := validation.Fields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}, validation.RuleSet{
		"email":    {Tag: "required,email", Message: "A valid email is required"},
		"password": validation.Required("Password"),
	})
	if len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": violations})
	}

	user, token, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetCurrentUser returns the account behind the presented token.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
