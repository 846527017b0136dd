package models

import (
	"time"
)

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique, which is what keeps
// the at-most-one-like-per-user invariant even under concurrent requests.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
