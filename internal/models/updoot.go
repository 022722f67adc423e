package models

import (
	"time"
)

// Updoot is one user's vote on one post. The composite primary key
// enforces at most one vote per user per post; flipping a vote updates
// the row in place.
type Updoot struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1, never 0
	CreatedAt time.Time `json:"created_at"`
}
