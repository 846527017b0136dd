package service

import (
	"context"
	"strings"

	"devfolio/internal/models"
	"devfolio/internal/repository"
)

// ChartService handles saved chart configurations.
type ChartService struct {
	chartRepo repository.ChartRepository
}

// ChartInput carries submitted chart fields.
type ChartInput struct {
	ChartName string
	ChartType string
	ChartID   string
}

// NewChartService returns a new ChartService.
func NewChartService(chartRepo repository.ChartRepository) *ChartService {
	return &ChartService{chartRepo: chartRepo}
}

// Create saves a chart configuration for the owner.
func (s *ChartService) Create(ctx context.Context, ownerID uint, in ChartInput) (*models.Chart, error) {
	if strings.TrimSpace(in.ChartName) == "" {
		return nil, models.NewValidationError("Chart name is required")
	}

	chart := &models.Chart{
		UserID:    ownerID,
		ChartName: in.ChartName,
		ChartType: in.ChartType,
		ChartID:   in.ChartID,
	}
	if err := s.chartRepo.Create(ctx, chart); err != nil {
		return nil, err
	}
	return chart, nil
}

// ListByOwner returns the owner's saved charts, newest first.
func (s *ChartService) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Chart, error) {
	return s.chartRepo.ListByOwner(ctx, ownerID, limit, offset)
}

// Delete removes a saved chart. Only its owner may delete it.
func (s *ChartService) Delete(ctx context.Context, id, requesterID uint) error {
	chart, err := s.chartRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if chart.UserID != requesterID {
		return models.NewForbiddenError("Not authorized to delete this chart")
	}
	return s.chartRepo.Delete(ctx, id)
}
