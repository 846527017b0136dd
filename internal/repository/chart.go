package repository

import (
	"context"
	"errors"

	"devfolio/internal/models"

	"gorm.io/gorm"
)

// ChartRepository defines persistence operations for saved charts.
type ChartRepository interface {
	Create(ctx context.Context, chart *models.Chart) error
	GetByID(ctx context.Context, id uint) (*models.Chart, error)
	ListByOwner(ctx context.Context, userID uint, limit, offset int) ([]models.Chart, error)
	Delete(ctx context.Context, id uint) error
}

type chartRepository struct {
	db *gorm.DB
}

// NewChartRepository returns a new ChartRepository implementation.
func NewChartRepository(db *gorm.DB) ChartRepository {
	return &chartRepository{db: db}
}

func (r *chartRepository) Create(ctx context.Context, chart *models.Chart) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(chart).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *chartRepository) GetByID(ctx context.Context, id uint) (*models.Chart, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var chart models.Chart
	if err := r.db.WithContext(ctx).First(&chart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Chart", id)
		}
		return nil, storeErr(err)
	}
	return &chart, nil
}

func (r *chartRepository) ListByOwner(ctx context.Context, userID uint, limit, offset int) ([]models.Chart, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var charts []models.Chart
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&charts).Error; err != nil {
		return nil, storeErr(err)
	}
	return charts, nil
}

func (r *chartRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Delete(&models.Chart{}, id).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
