package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/internal/app/service"
	apperrors "github.com/ikkim/meesho-backend/internal/errors"
	"github.com/ikkim/meesho-backend/internal/middleware"
)

type SearchController struct {
	searchService service.SearchService
}

func NewSearchController(searchService service.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// FiltersPayload is the wire form of structured search filters. price_range
// is still accepted from older clients; priceRange wins when both are sent.
type FiltersPayload struct {
	Category         string             `json:"category,omitempty"`
	Subcategory      string             `json:"subcategory,omitempty"`
	Tags             []string           `json:"tags,omitempty"`
	PriceRange       *search.PriceRange `json:"priceRange,omitempty"`
	LegacyPriceRange *search.PriceRange `json:"price_range,omitempty"`
}

func (f FiltersPayload) toFilters() search.Filters {
	priceRange := f.PriceRange
	if priceRange == nil {
		priceRange = f.LegacyPriceRange
	}
	return search.Filters{
		Category:    f.Category,
		Subcategory: f.Subcategory,
		Tags:        f.Tags,
		PriceRange:  priceRange,
	}
}

func filtersPayload(f search.Filters) FiltersPayload {
	return FiltersPayload{
		Category:    f.Category,
		Subcategory: f.Subcategory,
		Tags:        f.Tags,
		PriceRange:  f.PriceRange,
	}
}

// SearchRequest accepts page and limit as numbers or numeric strings.
type SearchRequest struct {
	Query string      `json:"query"`
	Page  interface{} `json:"page"`
	Limit interface{} `json:"limit"`
	FiltersPayload
}

// Search runs a product search
// POST /api/search
func (ctrl *SearchController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	// A missing body searches everything.
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("Invalid search request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid search request")
		return
	}

	result := ctrl.searchService.Search(c.Request.Context(), service.SearchRequest{
		Query:   req.Query,
		Page:    search.ParseInt(req.Page),
		Limit:   search.ParseInt(req.Limit),
		Filters: req.toFilters(),
	})

	log.Info("Search completed", map[string]interface{}{
		"query":    req.Query,
		"total":    result.Total,
		"degraded": result.Degraded,
	})

	c.JSON(http.StatusOK, searchResponse(result))
}

func searchResponse(result *service.SearchResult) gin.H {
	resp := gin.H{
		"success":  true,
		"query":    result.Query,
		"products": nonNilProducts(result.Products),
		"page":     result.Page,
		"pages":    result.Pages,
		"total":    result.Total,
		"limit":    result.Limit,
	}
	if result.Message != "" {
		resp["message"] = result.Message
	}
	return resp
}

func nonNilProducts(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
