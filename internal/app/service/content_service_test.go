package service

import (
	"context"
	"testing"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentServiceTest(t *testing.T) ContentService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	contentRepo := repository.NewContentRepository(testDB)
	gridRepo := repository.NewGridRepository(testDB)
	return NewContentService(contentRepo, gridRepo, nil)
}

func TestContentService_UpsertBlock_TextBlock(t *testing.T) {
	contentService := setupContentServiceTest(t)
	ctx := context.Background()

	block, err := contentService.UpsertBlock(ctx, ContentInput{
		Key:   "announcement_bar",
		Value: "Free shipping over $150",
		Type:  model.ContentTypeText,
	})
	require.NoError(t, err)
	assert.Equal(t, "Free shipping over $150", block.Value)

	// Second write to the same key replaces, not duplicates
	block, err = contentService.UpsertBlock(ctx, ContentInput{
		Key:   "announcement_bar",
		Value: "Holiday sale is live",
		Type:  model.ContentTypeText,
	})
	require.NoError(t, err)
	assert.Equal(t, "Holiday sale is live", block.Value)

	blocks, err := contentService.ListBlocks()
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestContentService_UpsertBlock_PreservesValueAndStyle(t *testing.T) {
	contentService := setupContentServiceTest(t)
	ctx := context.Background()

	_, err := contentService.UpsertBlock(ctx, ContentInput{
		Key:   "home_tagline",
		Value: "Quiet luxury, made to last",
		Type:  model.ContentTypeText,
		Style: `{"font":"serif","size":"xl"}`,
	})
	require.NoError(t, err)

	block, err := contentService.GetBlock("home_tagline")
	require.NoError(t, err)
	assert.Equal(t, "Quiet luxury, made to last", block.Value)
	assert.Equal(t, `{"font":"serif","size":"xl"}`, block.Style)

	// Rewriting the value keeps the style intact when resent
	_, err = contentService.UpsertBlock(ctx, ContentInput{
		Key:   "home_tagline",
		Value: "Made to last",
		Type:  model.ContentTypeText,
		Style: `{"font":"serif","size":"xl"}`,
	})
	require.NoError(t, err)

	block, err = contentService.GetBlock("home_tagline")
	require.NoError(t, err)
	assert.Equal(t, "Made to last", block.Value)
	assert.Equal(t, `{"font":"serif","size":"xl"}`, block.Style)
}

func TestContentService_UpsertBlock_RejectsUnknownType(t *testing.T) {
	contentService := setupContentServiceTest(t)

	_, err := contentService.UpsertBlock(context.Background(), ContentInput{
		Key:   "whatever",
		Value: "x",
		Type:  model.ContentType("video"),
	})
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestContentService_UpsertBlock_ValidatesHeroSlides(t *testing.T) {
	contentService := setupContentServiceTest(t)
	ctx := context.Background()

	// Not even JSON
	_, err := contentService.UpsertBlock(ctx, ContentInput{
		Key:   "home_hero_slides",
		Value: "not json",
		Type:  model.ContentTypeJSON,
	})
	assert.ErrorIs(t, err, ErrInvalidContentShape)

	// Valid JSON, wrong shape
	_, err = contentService.UpsertBlock(ctx, ContentInput{
		Key:   "home_hero_slides",
		Value: `[{"headline":"missing image"}]`,
		Type:  model.ContentTypeJSON,
	})
	assert.ErrorIs(t, err, ErrInvalidContentShape)

	// Correct shape passes
	_, err = contentService.UpsertBlock(ctx, ContentInput{
		Key:   "home_hero_slides",
		Value: `[{"image_url":"https://cdn.example.com/hero.jpg","headline":"New season"}]`,
		Type:  model.ContentTypeJSON,
	})
	assert.NoError(t, err)
}

func TestContentService_UpsertBlock_UnregisteredJSONKeyOnlyNeedsValidJSON(t *testing.T) {
	contentService := setupContentServiceTest(t)

	_, err := contentService.UpsertBlock(context.Background(), ContentInput{
		Key:   "experimental_widget",
		Value: `{"anything":"goes"}`,
		Type:  model.ContentTypeJSON,
	})
	assert.NoError(t, err)
}

func TestContentService_GetBlockOrDefault(t *testing.T) {
	contentService := setupContentServiceTest(t)

	assert.Equal(t, "fallback", contentService.GetBlockOrDefault("missing_key", "fallback"))

	_, err := contentService.UpsertBlock(context.Background(), ContentInput{
		Key:   "announcement_bar",
		Value: "set",
		Type:  model.ContentTypeText,
	})
	require.NoError(t, err)
	assert.Equal(t, "set", contentService.GetBlockOrDefault("announcement_bar", "fallback"))
}

func TestContentService_DeleteBlock(t *testing.T) {
	contentService := setupContentServiceTest(t)
	ctx := context.Background()

	_, err := contentService.UpsertBlock(ctx, ContentInput{
		Key:   "announcement_bar",
		Value: "x",
		Type:  model.ContentTypeText,
	})
	require.NoError(t, err)

	require.NoError(t, contentService.DeleteBlock(ctx, "announcement_bar"))

	_, err = contentService.GetBlock("announcement_bar")
	assert.ErrorIs(t, err, ErrContentNotFound)

	err = contentService.DeleteBlock(ctx, "announcement_bar")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestContentService_GridItems_OrderedByPosition(t *testing.T) {
	contentService := setupContentServiceTest(t)
	ctx := context.Background()

	_, err := contentService.CreateGridItem(ctx, GridItemInput{
		Position: 2, Title: "Second", LinkKind: model.GridLinkCategory, LinkSlug: "knitwear",
	})
	require.NoError(t, err)
	_, err = contentService.CreateGridItem(ctx, GridItemInput{
		Position: 1, Title: "First", LinkKind: model.GridLinkCollection, LinkSlug: "autumn-edit",
	})
	require.NoError(t, err)

	items, err := contentService.ListGridItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "Second", items[1].Title)
}

func TestContentService_UpdateGridItem_NotFound(t *testing.T) {
	contentService := setupContentServiceTest(t)

	_, err := contentService.UpdateGridItem(context.Background(), 42, GridItemInput{Title: "x"})
	assert.ErrorIs(t, err, ErrGridItemNotFound)
}
