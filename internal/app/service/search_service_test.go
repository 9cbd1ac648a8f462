package service

import (
	"context"
	"testing"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSearchServiceTest(t *testing.T) (SearchService, repository.ProductRepository) {
	testDB := setupTestDB(t)
	productRepo := repository.NewProductRepository(testDB)
	return NewSearchService(productRepo), productRepo
}

func seedSearchProducts(t *testing.T, repo repository.ProductRepository) {
	products := []*model.Product{
		{Title: "Silk Saree", Category: "Women Ethnic", Tags: model.Tags{"silk"}, Price: 450, ProductURL: "https://example.com/p/1"},
		{Title: "Georgette Saree", Category: "Women Ethnic", Tags: model.Tags{"party"}, Price: 900, ProductURL: "https://example.com/p/2"},
		{Title: "Denim Jacket", Category: "Men", Tags: model.Tags{"denim"}, Price: 1200, ProductURL: "https://example.com/p/3"},
		{Title: "Kids Frock", Category: "Kids", Tags: model.Tags{}, Price: 300, ProductURL: "https://example.com/p/4"},
	}
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func TestSearchService_Search(t *testing.T) {
	searchService, productRepo := setupSearchServiceTest(t)
	seedSearchProducts(t, productRepo)
	ctx := context.Background()
	max := 1000.0

	tests := []struct {
		name       string
		req        SearchRequest
		wantTitles []string
	}{
		{
			name:       "price phrase",
			req:        SearchRequest{Query: "saree under 500"},
			wantTitles: []string{"Silk Saree"},
		},
		{
			name:       "plain term",
			req:        SearchRequest{Query: "saree"},
			wantTitles: []string{"Georgette Saree", "Silk Saree"},
		},
		{
			name:       "category filter with price range",
			req:        SearchRequest{Filters: search.Filters{Category: "Women Ethnic", PriceRange: &search.PriceRange{Max: &max}}},
			wantTitles: []string{"Georgette Saree", "Silk Saree"},
		},
		{
			name:       "tag filter",
			req:        SearchRequest{Filters: search.Filters{Tags: []string{"denim"}}},
			wantTitles: []string{"Denim Jacket"},
		},
		{
			name:       "no match",
			req:        SearchRequest{Query: "laptop"},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := searchService.Search(ctx, tt.req)
			require.NotNil(t, result)
			assert.False(t, result.Degraded)
			assert.Empty(t, result.Message)
			assert.Equal(t, tt.req.Query, result.Query)
			assert.Equal(t, int64(len(tt.wantTitles)), result.Total)

			titles := make([]string, 0, len(result.Products))
			for _, p := range result.Products {
				titles = append(titles, p.Title)
			}
			assert.ElementsMatch(t, tt.wantTitles, titles)
		})
	}
}

func TestSearchService_Search_Pagination(t *testing.T) {
	searchService, productRepo := setupSearchServiceTest(t)
	seedSearchProducts(t, productRepo)

	result := searchService.Search(context.Background(), SearchRequest{Page: 2, Limit: 3})
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 3, result.Limit)
	assert.Equal(t, int64(4), result.Total)
	assert.Len(t, result.Products, 1)
}

func TestSearchService_Search_Degraded(t *testing.T) {
	searchService := NewSearchService(failingProductRepository{})

	result := searchService.Search(context.Background(), SearchRequest{Query: "kurti", Page: 3, Limit: 500})
	require.NotNil(t, result)
	assert.True(t, result.Degraded)
	assert.Equal(t, DegradedSearchMessage, result.Message)
	assert.Equal(t, "kurti", result.Query)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, int64(0), result.Total)
	assert.Equal(t, search.MaxLimit, result.Limit)
}
