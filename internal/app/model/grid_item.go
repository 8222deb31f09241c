package model

import (
	"time"

	"gorm.io/gorm"
)

type GridLinkKind string

const (
	GridLinkCollection GridLinkKind = "collection"
	GridLinkCategory   GridLinkKind = "category"
)

// GridItem is one tile of the home showcase: an ordered, curated pointer at
// a collection or category.
type GridItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Position  int            `gorm:"not null;index" json:"position"`
	Title     string         `gorm:"not null" json:"title"`
	Subtitle  string         `json:"subtitle"`
	ImageURL  string         `json:"image_url"`
	LinkKind  GridLinkKind   `gorm:"type:varchar(20)" json:"link_kind"`
	LinkSlug  string         `gorm:"size:150" json:"link_slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GridItem) TableName() string {
	return "grid_items"
}
