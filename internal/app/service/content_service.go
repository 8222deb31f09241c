package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound     = errors.New("content block not found")
	ErrInvalidContentType  = errors.New("unknown content type")
	ErrInvalidContentShape = errors.New("content value does not match the expected shape")
	ErrGridItemNotFound    = errors.New("grid item not found")
)

// contentShapes is the registry of JSON block keys with a fixed shape.
// Writes to these keys are validated before they reach the database so the
// storefront renderer never sees a malformed payload.
var contentShapes = map[string]func([]byte) error{
	"home_hero_slides": validateHeroSlides,
	"footer_links":     validateFooterLinks,
	"home_seo":         validateSEO,
}

type heroSlide struct {
	ImageURL string `json:"image_url"`
	Headline string `json:"headline"`
	Subline  string `json:"subline"`
	CTALabel string `json:"cta_label"`
	CTALink  string `json:"cta_link"`
}

func validateHeroSlides(data []byte) error {
	var slides []heroSlide
	if err := json.Unmarshal(data, &slides); err != nil {
		return err
	}
	if len(slides) == 0 {
		return errors.New("at least one slide is required")
	}
	for i, slide := range slides {
		if slide.ImageURL == "" {
			return fmt.Errorf("slide %d: image_url is required", i)
		}
	}
	return nil
}

type footerLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func validateFooterLinks(data []byte) error {
	var sections map[string][]footerLink
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}
	for section, links := range sections {
		for i, link := range links {
			if link.Label == "" || link.URL == "" {
				return fmt.Errorf("section %q link %d: label and url are required", section, i)
			}
		}
	}
	return nil
}

func validateSEO(data []byte) error {
	var seo struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &seo); err != nil {
		return err
	}
	if seo.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

type ContentInput struct {
	Key   string
	Value string
	Type  model.ContentType
	Style string
}

type GridItemInput struct {
	Position int
	Title    string
	Subtitle string
	ImageURL string
	LinkKind model.GridLinkKind
	LinkSlug string
}

type ContentService interface {
	ListBlocks() ([]model.ContentBlock, error)
	GetBlock(key string) (*model.ContentBlock, error)
	// GetBlockOrDefault falls back to the given value when the key is unset
	GetBlockOrDefault(key, fallback string) string
	UpsertBlock(ctx context.Context, input ContentInput) (*model.ContentBlock, error)
	DeleteBlock(ctx context.Context, key string) error

	ListGridItems() ([]model.GridItem, error)
	CreateGridItem(ctx context.Context, input GridItemInput) (*model.GridItem, error)
	UpdateGridItem(ctx context.Context, id uint, input GridItemInput) (*model.GridItem, error)
	DeleteGridItem(ctx context.Context, id uint) error
}

type contentService struct {
	contentRepo repository.ContentRepository
	gridRepo    repository.GridRepository
	cache       HomeInvalidator
}

func NewContentService(
	contentRepo repository.ContentRepository,
	gridRepo repository.GridRepository,
	cache HomeInvalidator,
) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		gridRepo:    gridRepo,
		cache:       cache,
	}
}

func (s *contentService) ListBlocks() ([]model.ContentBlock, error) {
	return s.contentRepo.FindAll()
}

func (s *contentService) GetBlock(key string) (*model.ContentBlock, error) {
	block, err := s.contentRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return block, nil
}

func (s *contentService) GetBlockOrDefault(key, fallback string) string {
	block, err := s.GetBlock(key)
	if err != nil {
		return fallback
	}
	return block.Value
}

func (s *contentService) UpsertBlock(ctx context.Context, input ContentInput) (*model.ContentBlock, error) {
	if !model.ValidContentType(input.Type) {
		return nil, ErrInvalidContentType
	}

	if input.Type == model.ContentTypeJSON {
		if !json.Valid([]byte(input.Value)) {
			return nil, ErrInvalidContentShape
		}
		if validate, ok := contentShapes[input.Key]; ok {
			if err := validate([]byte(input.Value)); err != nil {
				logger.Warn("Content block rejected, shape validation failed", map[string]interface{}{
					"key":    input.Key,
					"reason": err.Error(),
				})
				return nil, fmt.Errorf("%w: %v", ErrInvalidContentShape, err)
			}
		}
	}

	block := &model.ContentBlock{
		Key:   input.Key,
		Value: input.Value,
		Type:  input.Type,
		Style: input.Style,
	}
	if err := s.contentRepo.Upsert(block); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)

	logger.Info("Content block saved", map[string]interface{}{
		"key":  input.Key,
		"type": input.Type,
	})
	return s.GetBlock(input.Key)
}

func (s *contentService) DeleteBlock(ctx context.Context, key string) error {
	if _, err := s.GetBlock(key); err != nil {
		return err
	}
	if err := s.contentRepo.Delete(key); err != nil {
		return err
	}

	invalidateHome(ctx, s.cache)
	return nil
}

func (s *contentService) ListGridItems() ([]model.GridItem, error) {
	return s.gridRepo.FindAll()
}

func (s *contentService) CreateGridItem(ctx context.Context, input GridItemInput) (*model.GridItem, error) {
	item := &model.GridItem{
		Position: input.Position,
		Title:    input.Title,
		Subtitle: input.Subtitle,
		ImageURL: input.ImageURL,
		LinkKind: input.LinkKind,
		LinkSlug: input.LinkSlug,
	}
	if err := s.gridRepo.Create(item); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return item, nil
}

func (s *contentService) UpdateGridItem(ctx context.Context, id uint, input GridItemInput) (*model.GridItem, error) {
	item, err := s.gridRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGridItemNotFound
		}
		return nil, err
	}

	item.Position = input.Position
	item.Title = input.Title
	item.Subtitle = input.Subtitle
	item.ImageURL = input.ImageURL
	item.LinkKind = input.LinkKind
	item.LinkSlug = input.LinkSlug

	if err := s.gridRepo.Update(item); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return item, nil
}

func (s *contentService) DeleteGridItem(ctx context.Context, id uint) error {
	if _, err := s.gridRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGridItemNotFound
		}
		return err
	}
	if err := s.gridRepo.Delete(id); err != nil {
		return err
	}

	invalidateHome(ctx, s.cache)
	return nil
}
