package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Product carries the denormalized aggregate stock counter. When variants
// exist the aggregate is kept equal to the variant sum; order placement
// decrements both inside one transaction and a scheduled reconciler repairs
// drift introduced by direct admin edits.
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string         `json:"image_url"`
	Media         string         `gorm:"type:text" json:"-"` // JSON array of media URLs
	CollectionID  *uint          `gorm:"index" json:"collection_id,omitempty"`
	CategoryID    *uint          `gorm:"index" json:"category_id,omitempty"`
	Featured      bool           `gorm:"default:false;index" json:"featured"`
	Trending      bool           `gorm:"default:false;index" json:"trending"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Collection *Collection      `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	Category   *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants   []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	OrderItems []OrderItem      `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem       `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// MediaList decodes the stored media URL array. Malformed or empty payloads
// resolve to nil rather than an error.
func (p *Product) MediaList() []string {
	if p.Media == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.Media), &urls); err != nil {
		return nil
	}
	return urls
}

// SetMediaList encodes the media URL array for storage
func (p *Product) SetMediaList(urls []string) error {
	if len(urls) == 0 {
		p.Media = ""
		return nil
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	p.Media = string(data)
	return nil
}

// MarshalJSON surfaces the decoded media list on the wire
func (p Product) MarshalJSON() ([]byte, error) {
	type productAlias Product
	return json.Marshal(struct {
		productAlias
		MediaURLs []string `json:"media_urls,omitempty"`
	}{
		productAlias: productAlias(p),
		MediaURLs:    p.MediaList(),
	})
}
