package model

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	VariantID *uint          `gorm:"index" json:"variant_id,omitempty"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User    User            `gorm:"foreignKey:UserID" json:"-"`
	Product Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// StockCeiling is the known stock limit for this line: the variant counter
// when a variant is selected, the product aggregate otherwise.
func (ci *CartItem) StockCeiling() int {
	if ci.VariantID != nil && ci.Variant != nil {
		return ci.Variant.StockQuantity
	}
	return ci.Product.StockQuantity
}
