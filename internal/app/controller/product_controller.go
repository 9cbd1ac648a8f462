package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/internal/app/service"
	apperrors "github.com/ikkim/meesho-backend/internal/errors"
	"github.com/ikkim/meesho-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Tags          []string `json:"tags"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price"`
	Discount      *string  `json:"discount"`
	Rating        *float64 `json:"rating"`
	ReviewsCount  *int     `json:"reviews_count"`
	ProductURL    string   `json:"product_url" binding:"required"`
	ImageURL      string   `json:"image_url"`
}

// ListProducts returns one page of products, newest first
// GET /api/products?category=&page=&limit=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := c.Query("category")
	page := search.ParseInt(c.Query("page"))
	limit := search.ParseInt(c.Query("limit"))

	result, err := ctrl.productService.ListProducts(c.Request.Context(), category, page, limit)
	if err != nil {
		log.Error("Failed to fetch products", err, map[string]interface{}{
			"category": category,
		})
		apperrors.Respond(c, err, "product")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(result.Products),
		"total": result.Total,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": nonNilProducts(result.Products),
		"page":     result.Page,
		"pages":    result.Pages,
		"total":    result.Total,
		"limit":    result.Limit,
	})
}

// GetProduct returns a product by ID
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	product, err := ctrl.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.Respond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// CreateProduct creates a new product (Admin only)
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Title, product URL and a positive price are required")
		return
	}

	product := &model.Product{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Tags:          model.Tags(req.Tags),
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
		Rating:        req.Rating,
		ReviewsCount:  req.ReviewsCount,
		ProductURL:    req.ProductURL,
		ImageURL:      req.ImageURL,
	}

	if err := ctrl.productService.CreateProduct(c.Request.Context(), product); err != nil {
		switch {
		case errors.Is(err, service.ErrProductURLExists):
			apperrors.Conflict(c, apperrors.ProductURLExists, "Product with this URL already exists")
		case errors.Is(err, service.ErrInvalidProduct):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Title, product URL and a positive price are required")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"title": req.Title,
			})
			apperrors.Respond(c, err, "product")
		}
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}
