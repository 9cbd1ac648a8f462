package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("connection refused")

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createProduct(t *testing.T, repo repository.ProductRepository, title, url string, price float64) *model.Product {
	product := &model.Product{
		Title:      title,
		Price:      price,
		ProductURL: url,
		Tags:       model.Tags{},
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func strPtr(s string) *string {
	return &s
}

// memoryCache is an in-process Cache that round-trips values through JSON
// like the Redis implementation does.
type memoryCache struct {
	entries map[string][]byte
	gets    int
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// failingProductRepository fails every query, simulating an unavailable store.
type failingProductRepository struct {
	repository.ProductRepository
}

func (failingProductRepository) Count(ctx context.Context, p search.Predicate) (int64, error) {
	return 0, errStoreDown
}

func (failingProductRepository) Find(ctx context.Context, p search.Predicate, sort []search.SortField, skip, limit int) ([]model.Product, error) {
	return nil, errStoreDown
}

type failingCategoryRepository struct{}

func (failingCategoryRepository) Create(ctx context.Context, c *model.Category) error {
	return errStoreDown
}

func (failingCategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	return nil, errStoreDown
}
