package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/service"
	apperrors "github.com/ikkim/meesho-backend/internal/errors"
	"github.com/ikkim/meesho-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
	Order int    `json:"order"`
}

// ListCategories returns categories in display order
// GET /api/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	categories := ctrl.categoryService.List(c.Request.Context())
	if categories == nil {
		categories = []model.Category{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// CreateCategory adds a category (Admin only)
// POST /api/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Category name is required")
		return
	}

	category := &model.Category{
		Name:  req.Name,
		Image: req.Image,
		Order: req.Order,
	}
	if err := ctrl.categoryService.Create(c.Request.Context(), category); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryExists):
			apperrors.Conflict(c, apperrors.CategoryExists, "Category already exists")
		case errors.Is(err, service.ErrCategoryNameMissing):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Category name is required")
		default:
			log.Error("Failed to create category", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.Respond(c, err, "category")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"category": category,
	})
}
