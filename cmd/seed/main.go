package main

import (
	"fmt"
	"log"

	"github.com/shlee-dev/veloura-backend/config"
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"gorm.io/gorm"
)

// Seeds a fresh database with a small demo catalog and the content blocks
// the storefront expects. Safe to re-run: existing slugs and keys are
// skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	conn := db.GetDB()

	collections := []model.Collection{
		{Title: "Autumn Edit", Slug: "autumn-edit", Description: "Layered silhouettes for the season"},
		{Title: "Essentials", Slug: "essentials", Description: "Wardrobe staples, restocked"},
	}
	for i := range collections {
		if err := firstOrCreateBySlug(conn, &collections[i], collections[i].Slug); err != nil {
			log.Fatal("Failed to seed collection:", err)
		}
	}

	categories := []model.Category{
		{Title: "Outerwear", Slug: "outerwear"},
		{Title: "Knitwear", Slug: "knitwear"},
		{Title: "Accessories", Slug: "accessories"},
	}
	for i := range categories {
		if err := firstOrCreateBySlug(conn, &categories[i], categories[i].Slug); err != nil {
			log.Fatal("Failed to seed category:", err)
		}
	}

	products := []struct {
		product  model.Product
		variants []model.ProductVariant
	}{
		{
			product: model.Product{
				Title:        "Wool Overcoat",
				Slug:         "wool-overcoat",
				Description:  "Double-faced wool in a relaxed cut",
				Price:        320,
				CollectionID: &collections[0].ID,
				CategoryID:   &categories[0].ID,
				Featured:     true,
			},
			variants: []model.ProductVariant{
				{Size: "S", Color: "Camel", SKU: "WOC-S-CAM", StockQuantity: 6},
				{Size: "M", Color: "Camel", SKU: "WOC-M-CAM", StockQuantity: 9},
				{Size: "L", Color: "Charcoal", SKU: "WOC-L-CHA", StockQuantity: 4},
			},
		},
		{
			product: model.Product{
				Title:        "Merino Crewneck",
				Slug:         "merino-crewneck",
				Description:  "Extra-fine merino, garment dyed",
				Price:        95,
				CollectionID: &collections[1].ID,
				CategoryID:   &categories[1].ID,
				Trending:     true,
			},
			variants: []model.ProductVariant{
				{Size: "S", Color: "Ivory", SKU: "MCN-S-IVO", StockQuantity: 12},
				{Size: "M", Color: "Ivory", SKU: "MCN-M-IVO", StockQuantity: 15},
			},
		},
		{
			product: model.Product{
				Title:         "Leather Card Holder",
				Slug:          "leather-card-holder",
				Description:   "Vegetable-tanned, ages well",
				Price:         45,
				StockQuantity: 30,
				CategoryID:    &categories[2].ID,
				Featured:      true,
			},
		},
	}
	for _, entry := range products {
		p := entry.product
		if err := firstOrCreateBySlug(conn, &p, p.Slug); err != nil {
			log.Fatal("Failed to seed product:", err)
		}
		total := 0
		for _, v := range entry.variants {
			v.ProductID = p.ID
			var existing model.ProductVariant
			err := conn.Where("sku = ?", v.SKU).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				if err := conn.Create(&v).Error; err != nil {
					log.Fatal("Failed to seed variant:", err)
				}
			} else if err != nil {
				log.Fatal("Failed to check variant:", err)
			}
			total += v.StockQuantity
		}
		if len(entry.variants) > 0 {
			if err := conn.Model(&model.Product{}).Where("id = ?", p.ID).
				Update("stock_quantity", total).Error; err != nil {
				log.Fatal("Failed to sync product stock:", err)
			}
		}
	}

	blocks := []model.ContentBlock{
		{
			Key:  "home_hero_slides",
			Type: model.ContentTypeJSON,
			Value: `[{"image_url":"https://cdn.veloura.shop/content/hero-autumn.jpg",` +
				`"headline":"The Autumn Edit","subline":"Layers that last",` +
				`"cta_label":"Shop now","cta_link":"/collections/autumn-edit"}]`,
		},
		{
			Key:   "home_seo",
			Type:  model.ContentTypeJSON,
			Value: `{"title":"VELOURA","description":"Considered clothing and accessories"}`,
		},
		{
			Key:   "announcement_bar",
			Type:  model.ContentTypeText,
			Value: "Free shipping on orders over $150",
		},
	}
	for i := range blocks {
		var existing model.ContentBlock
		err := conn.Where("key = ?", blocks[i].Key).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := conn.Create(&blocks[i]).Error; err != nil {
				log.Fatal("Failed to seed content block:", err)
			}
		} else if err != nil {
			log.Fatal("Failed to check content block:", err)
		}
	}

	gridItems := []model.GridItem{
		{Position: 1, Title: "Outerwear", LinkKind: model.GridLinkCategory, LinkSlug: "outerwear"},
		{Position: 2, Title: "Autumn Edit", Subtitle: "New season", LinkKind: model.GridLinkCollection, LinkSlug: "autumn-edit"},
	}
	for i := range gridItems {
		var existing model.GridItem
		err := conn.Where("position = ?", gridItems[i].Position).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := conn.Create(&gridItems[i]).Error; err != nil {
				log.Fatal("Failed to seed grid item:", err)
			}
		} else if err != nil {
			log.Fatal("Failed to check grid item:", err)
		}
	}

	fmt.Println("Seed completed successfully!")
}

// firstOrCreateBySlug creates the record unless its slug already exists
func firstOrCreateBySlug[T any](conn *gorm.DB, record *T, slug string) error {
	err := conn.Where("slug = ?", slug).First(record).Error
	if err == gorm.ErrRecordNotFound {
		return conn.Create(record).Error
	}
	return err
}
