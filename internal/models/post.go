package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a user-authored post. The author's name and avatar are
// snapshotted at creation time and do not track later account updates.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text   string `gorm:"type:text;not null" json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Likes  []Like `gorm:"foreignKey:PostID" json:"likes,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"-" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
