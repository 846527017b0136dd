package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialLinks holds the optional social network URLs on a profile. Stored as
// a single JSON column.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is a user's public developer profile. The unique index on UserID
// holds the one-profile-per-user invariant at the storage level.
type Profile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status         string         `gorm:"not null" json:"status"`
	Company        string         `json:"company,omitempty"`
	Website        string         `json:"website,omitempty"`
	Location       string         `json:"location,omitempty"`
	Bio            string         `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string         `json:"githubusername,omitempty"`
	Skills         []string       `gorm:"serializer:json" json:"skills"`
	Social         SocialLinks    `gorm:"serializer:json" json:"social"`
	Experience     []Experience   `gorm:"foreignKey:ProfileID" json:"experience"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Experience is a work history entry on a profile. A nil To with Current set
// means the position is ongoing.
type Experience struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProfileID   uint           `gorm:"not null;index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Company     string         `gorm:"not null" json:"company"`
	Location    string         `json:"location,omitempty"`
	From        time.Time      `gorm:"not null" json:"from"`
	To          *time.Time     `json:"to,omitempty"`
	Current     bool           `json:"current"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
