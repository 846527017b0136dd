package models

import (
	"time"

	"gorm.io/gorm"
)

// Chart is saved chart metadata owned by a user. ChartID references the
// chart definition held by the rendering frontend.
type Chart struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ChartName string         `gorm:"not null" json:"chart_name"`
	ChartType string         `json:"chart_type"`
	ChartID   string         `json:"chart_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
