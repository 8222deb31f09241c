package repository

import (
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(blog *model.Blog) error
	// FindAll returns posts newest first. publishedOnly hides drafts for
	// the storefront listing.
	FindAll(publishedOnly bool) ([]model.Blog, error)
	FindByID(id uint) (*model.Blog, error)
	FindBySlug(slug string) (*model.Blog, error)
	Update(blog *model.Blog) error
	Delete(id uint) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(blog *model.Blog) error {
	if err := r.db.Create(blog).Error; err != nil {
		logger.Error("Failed to create blog post in database", err, map[string]interface{}{
			"slug": blog.Slug,
		})
		return err
	}

	logger.Debug("Blog post created in database", map[string]interface{}{
		"blog_id": blog.ID,
		"slug":    blog.Slug,
	})
	return nil
}

func (r *blogRepository) FindAll(publishedOnly bool) ([]model.Blog, error) {
	query := r.db.Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var blogs []model.Blog
	if err := query.Find(&blogs).Error; err != nil {
		logger.Error("Failed to find blog posts in database", err, nil)
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) FindByID(id uint) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) FindBySlug(slug string) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.Where("slug = ?", slug).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) Update(blog *model.Blog) error {
	if err := r.db.Save(blog).Error; err != nil {
		logger.Error("Failed to update blog post in database", err, map[string]interface{}{
			"blog_id": blog.ID,
		})
		return err
	}
	return nil
}

func (r *blogRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Blog{}, id).Error; err != nil {
		logger.Error("Failed to delete blog post from database", err, map[string]interface{}{
			"blog_id": id,
		})
		return err
	}
	return nil
}
