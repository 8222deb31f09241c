package model

import (
	"time"

	"gorm.io/gorm"
)

type Blog struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt    string         `gorm:"type:text" json:"excerpt"`
	Content    string         `gorm:"type:text" json:"content"`
	CoverImage string         `json:"cover_image"`
	Published  bool           `gorm:"default:false;index" json:"published"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Blog) TableName() string {
	return "blogs"
}
