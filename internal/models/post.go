package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatorID uint      `gorm:"not null;index" json:"creator_id"`
	Creator   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator"`
	Points    int       `gorm:"default:0" json:"points"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
