package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/pkg/logger"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductURLExists = errors.New("product with this URL already exists")
	ErrInvalidProduct   = errors.New("title, product URL and a positive price are required")
)

const productCacheKeyPrefix = "product:"

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products []model.Product
	Page     int
	Pages    int
	Limit    int
	Total    int64
}

type ProductService interface {
	ListProducts(ctx context.Context, category string, page, limit int) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error)
	ExportProducts(ctx context.Context, w io.Writer) error
}

type productService struct {
	productRepo repository.ProductRepository
	cache       Cache
}

// NewProductService builds the catalog service. cache may be nil.
func NewProductService(productRepo repository.ProductRepository, cache Cache) ProductService {
	return &productService{
		productRepo: productRepo,
		cache:       cache,
	}
}

func (s *productService) ListProducts(ctx context.Context, category string, page, limit int) (*ProductPage, error) {
	predicate := search.Predicate{Category: strings.ToLower(strings.TrimSpace(category))}

	total, err := s.productRepo.Count(ctx, predicate)
	if err != nil {
		return nil, err
	}

	p := search.Paginate(page, limit, total)
	products, err := s.productRepo.Find(ctx, predicate, search.DefaultSort, p.Skip, p.Limit)
	if err != nil {
		return nil, err
	}

	logger.Debug("Products listed", map[string]interface{}{
		"category": category,
		"page":     p.Page,
		"count":    len(products),
		"total":    total,
	})
	return &ProductPage{
		Products: products,
		Page:     p.Page,
		Pages:    p.Pages,
		Limit:    p.Limit,
		Total:    total,
	}, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	key := productCacheKeyPrefix + id
	if s.cache != nil {
		var cached model.Product
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warn("Product cache read failed", map[string]interface{}{
				"product_id": id,
				"error":      err.Error(),
			})
		} else if hit {
			return &cached, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, product); err != nil {
			logger.Warn("Product cache write failed", map[string]interface{}{
				"product_id": id,
				"error":      err.Error(),
			})
		}
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *model.Product) error {
	product.Title = strings.TrimSpace(product.Title)
	product.ProductURL = strings.TrimSpace(product.ProductURL)
	if product.Title == "" || product.ProductURL == "" || product.Price <= 0 {
		return ErrInvalidProduct
	}
	if product.Tags == nil {
		product.Tags = model.Tags{}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrProductURLExists
		}
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
		"category":   product.Category,
	})
	return nil
}
