package model

import (
	"time"
)

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
	ContentTypeJSON  ContentType = "json"
)

// ValidContentType reports whether t is a known content type
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentTypeText, ContentTypeImage, ContentTypeJSON:
		return true
	}
	return false
}

// ContentBlock is a named, typed configuration value edited through the
// admin CMS and rendered into the storefront. JSON-typed blocks with a
// registered key are shape-validated on write.
type ContentBlock struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	Key       string      `gorm:"uniqueIndex;not null;size:100" json:"key"`
	Value     string      `gorm:"type:text" json:"value"`
	Type      ContentType `gorm:"type:varchar(20);default:'text'" json:"type"`
	Style     string      `gorm:"type:text" json:"style"` // JSON styling hints for the renderer
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (ContentBlock) TableName() string {
	return "content_blocks"
}
