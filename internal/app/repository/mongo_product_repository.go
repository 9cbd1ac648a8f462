package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollectionName = "products"

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection(productCollectionName)}
}

func (r *mongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Tags == nil {
		product.Tags = model.Tags{}
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		logger.Error("Failed to insert product into MongoDB", err, map[string]interface{}{
			"title":       product.Title,
			"product_url": product.ProductURL,
		})
		return translateError(err)
	}

	logger.Debug("Product inserted into MongoDB", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *mongoProductRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) ExistingURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(urls) == 0 {
		return existing, nil
	}
	values, err := r.collection.Distinct(ctx, "product_url", bson.M{"product_url": bson.M{"$in": urls}})
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if s, ok := v.(string); ok {
			existing[s] = true
		}
	}
	return existing, nil
}

func (r *mongoProductRepository) Count(ctx context.Context, predicate search.Predicate) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, PredicateToBSON(predicate))
	if err != nil {
		logger.Error("Failed to count products in MongoDB", err)
		return 0, err
	}
	return total, nil
}

func (r *mongoProductRepository) Find(ctx context.Context, predicate search.Predicate, sort []search.SortField, skip, limit int) ([]model.Product, error) {
	opts := options.Find().SetSort(SortToBSON(sort))
	if skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, PredicateToBSON(predicate), opts)
	if err != nil {
		logger.Error("Failed to find products in MongoDB", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return r.Find(ctx, search.Predicate{}, search.DefaultSort, 0, 0)
}
