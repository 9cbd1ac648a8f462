package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/meesho-backend/config"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var Mongo *mongo.Database

// InitializeMongo connects to MongoDB, verifies the connection and makes sure
// the unique indexes exist.
func InitializeMongo(cfg *config.DatabaseConfig) error {
	logger.Info("Connecting to MongoDB", map[string]interface{}{
		"database": cfg.MongoDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	database, err := prepareMongo(ctx, client, cfg.MongoDB, ensureIndexes)
	if err != nil {
		return err
	}
	Mongo = database

	logger.Info("MongoDB connection established successfully")
	return nil
}

// mongoClient is the part of *mongo.Client needed to bring a database up.
type mongoClient interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
	Disconnect(ctx context.Context) error
}

// prepareMongo pings the server and runs setup on the named database. The
// client is disconnected on any failure.
func prepareMongo(
	ctx context.Context,
	client mongoClient,
	name string,
	setup func(context.Context, *mongo.Database) error,
) (*mongo.Database, error) {
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(name)
	if err := setup(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return database, nil
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"products": {
			{Keys: bson.D{{Key: "product_url", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		"carts": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"users": {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"categories": {
			{Keys: bson.D{{Key: "order", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("Failed to create MongoDB indexes", err, map[string]interface{}{
				"collection": collection,
			})
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// CloseMongo disconnects the MongoDB client
func CloseMongo() error {
	if Mongo == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Mongo.Client().Disconnect(ctx)
}
