package model

import (
	"time"

	"gorm.io/gorm"
)

// Address holds a delivery address. Exactly one address per user carries
// IsDefault, enforced by the repository's transactional swap.
type Address struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Label      string         `gorm:"size:100" json:"label"` // e.g. "Home", "Office"
	Recipient  string         `gorm:"size:100;not null" json:"recipient"`
	Phone      string         `gorm:"size:30;not null" json:"phone"`
	Line1      string         `gorm:"type:text;not null" json:"line1"`
	Line2      string         `gorm:"type:text" json:"line2"`
	City       string         `gorm:"size:100" json:"city"`
	PostalCode string         `gorm:"size:20" json:"postal_code"`
	Country    string         `gorm:"size:100" json:"country"`
	IsDefault  bool           `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
