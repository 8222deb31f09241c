package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is a size/color combination with its own stock counter,
// distinct from the parent product's aggregate.
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"not null;index" json:"product_id"`
	Size          string         `gorm:"size:50" json:"size"`
	Color         string         `gorm:"size:50" json:"color"`
	SKU           string         `gorm:"uniqueIndex;size:100" json:"sku"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
