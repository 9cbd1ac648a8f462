package repository

import (
	"context"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	// ExistingURLs returns the subset of urls already stored.
	ExistingURLs(ctx context.Context, urls []string) (map[string]bool, error)
	Count(ctx context.Context, predicate search.Predicate) (int64, error)
	Find(ctx context.Context, predicate search.Predicate, sort []search.SortField, skip, limit int) ([]model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":       product.Title,
		"category":    product.Category,
		"product_url": product.ProductURL,
	})

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title":       product.Title,
			"product_url": product.ProductURL,
		})
		return translateError(err)
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		err = translateError(err)
		if err != ErrNotFound {
			logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		logger.Error("Failed to find products by IDs in database", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ExistingURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(urls) == 0 {
		return existing, nil
	}

	var found []string
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_url IN ?", urls).
		Pluck("product_url", &found).Error; err != nil {
		logger.Error("Failed to look up product URLs in database", err)
		return nil, err
	}
	for _, u := range found {
		existing[u] = true
	}
	return existing, nil
}

func (r *productRepository) Count(ctx context.Context, predicate search.Predicate) (int64, error) {
	var total int64
	query := applyPredicate(r.db.WithContext(ctx).Model(&model.Product{}), predicate)
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count products in database", err, map[string]interface{}{
			"category": predicate.Category,
			"terms":    predicate.Terms,
		})
		return 0, err
	}
	return total, nil
}

func (r *productRepository) Find(ctx context.Context, predicate search.Predicate, sort []search.SortField, skip, limit int) ([]model.Product, error) {
	logger.Debug("Finding products with predicate", map[string]interface{}{
		"category":    predicate.Category,
		"subcategory": predicate.Subcategory,
		"terms":       predicate.Terms,
		"tags":        predicate.Tags,
		"skip":        skip,
		"limit":       limit,
	})

	query := applySort(applyPredicate(r.db.WithContext(ctx).Model(&model.Product{}), predicate), sort)
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	products := []model.Product{}
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products in database", err)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return r.Find(ctx, search.Predicate{}, search.DefaultSort, 0, 0)
}
