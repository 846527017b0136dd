package server

import (
	"strconv"

	"devfolio/internal/models"
	"devfolio/internal/service"
	"devfolio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type chartRequest struct {
	ChartName string `json:"chart_name"`
	ChartType string `json:"chart_type"`
	ChartID   string `json:"chart_id"`
}

// CreateChart saves a chart configuration for the caller.
func (s *Server) CreateChart(c *fiber.Ctx) error {
	var req chartRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	violations := validation.Fields(map[string]string{
		"chart_name": req.ChartName,
	}, validation.RuleSet{
		"chart_name": validation.Required("Chart name"),
	})
	if len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": violations})
	}

	chart, err := s.chartService.Create(c.UserContext(), currentUserID(c), service.ChartInput{
		ChartName: req.ChartName,
		ChartType: req.ChartType,
		ChartID:   req.ChartID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(chart)
}

// GetCharts returns the caller's saved charts, newest first.
func (s *Server) GetCharts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	charts, err := s.chartService.ListByOwner(c.UserContext(), currentUserID(c), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(charts)
}

// DeleteChart removes a chart the caller owns.
func (s *Server) DeleteChart(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid chart ID"))
	}

	if err := s.chartService.Delete(c.UserContext(), uint(id), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Chart removed"})
}
