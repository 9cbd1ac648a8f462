package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/pkg/logger"
)

var (
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryNameMissing = errors.New("category name is required")
)

const categoriesCacheKey = "categories"

// FallbackCategories are served when the category store cannot be read.
var FallbackCategories = []model.Category{
	{
		ID:    "fallback-women",
		Name:  "Women",
		Image: "https://images.meesho.com/images/marketing/1649760442043.webp",
		Order: 1,
	},
	{
		ID:    "fallback-home",
		Name:  "Home Decor",
		Image: "https://images.meesho.com/images/marketing/1649760557045.webp",
		Order: 2,
	},
}

type CategoryService interface {
	// List never fails; on storage errors it returns FallbackCategories.
	List(ctx context.Context) []model.Category
	Create(ctx context.Context, category *model.Category) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        Cache
}

// NewCategoryService builds the category service. cache may be nil.
func NewCategoryService(categoryRepo repository.CategoryRepository, cache Cache) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *categoryService) List(ctx context.Context) []model.Category {
	if s.cache != nil {
		var cached []model.Category
		hit, err := s.cache.GetJSON(ctx, categoriesCacheKey, &cached)
		if err != nil {
			logger.Warn("Category cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if hit {
			return cached
		}
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load categories, serving fallback", err)
		fallback := make([]model.Category, len(FallbackCategories))
		copy(fallback, FallbackCategories)
		return fallback
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, categoriesCacheKey, categories); err != nil {
			logger.Warn("Category cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return categories
}

func (s *categoryService) Create(ctx context.Context, category *model.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return ErrCategoryNameMissing
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrCategoryExists
		}
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, categoriesCacheKey); err != nil {
			logger.Warn("Category cache invalidation failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}
