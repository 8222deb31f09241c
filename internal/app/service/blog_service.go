package service

import (
	"errors"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrBlogNotFound = errors.New("blog post not found")

type BlogInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Published  bool
}

type BlogService interface {
	// List returns posts, drafts included only for the admin view
	List(includeDrafts bool) ([]model.Blog, error)
	GetBySlug(slug string) (*model.Blog, error)
	Create(input BlogInput) (*model.Blog, error)
	Update(id uint, input BlogInput) (*model.Blog, error)
	Delete(id uint) error
}

type blogService struct {
	blogRepo repository.BlogRepository
}

func NewBlogService(blogRepo repository.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

func (s *blogService) List(includeDrafts bool) ([]model.Blog, error) {
	return s.blogRepo.FindAll(!includeDrafts)
}

func (s *blogService) GetBySlug(slug string) (*model.Blog, error) {
	blog, err := s.blogRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	// Drafts stay invisible on the storefront, same as List
	if !blog.Published {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

func (s *blogService) Create(input BlogInput) (*model.Blog, error) {
	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Title)
	}
	if _, err := s.blogRepo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	blog := &model.Blog{
		Title:      input.Title,
		Slug:       slug,
		Excerpt:    input.Excerpt,
		Content:    input.Content,
		CoverImage: input.CoverImage,
		Published:  input.Published,
	}
	if err := s.blogRepo.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) Update(id uint, input BlogInput) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	if input.Slug != "" && input.Slug != blog.Slug {
		if existing, err := s.blogRepo.FindBySlug(input.Slug); err == nil && existing.ID != id {
			return nil, ErrSlugTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		blog.Slug = input.Slug
	}
	blog.Title = input.Title
	blog.Excerpt = input.Excerpt
	blog.Content = input.Content
	blog.CoverImage = input.CoverImage
	blog.Published = input.Published

	if err := s.blogRepo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) Delete(id uint) error {
	if _, err := s.blogRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	return s.blogRepo.Delete(id)
}
