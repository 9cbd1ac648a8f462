package bootstrap

import (
	"github.com/ikkim/meesho-backend/config"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/db"
)

// Repositories bundles the storage implementations selected by DB_DRIVER.
type Repositories struct {
	Users      repository.UserRepository
	Products   repository.ProductRepository
	Carts      repository.CartRepository
	Categories repository.CategoryRepository

	close func() error
}

// OpenRepositories connects to the configured backend. Postgres schemas are
// migrated; Mongo indexes are ensured.
func OpenRepositories(cfg *config.DatabaseConfig) (*Repositories, error) {
	if cfg.Driver == config.DriverMongo {
		if err := db.InitializeMongo(cfg); err != nil {
			return nil, err
		}
		return &Repositories{
			Users:      repository.NewMongoUserRepository(db.Mongo),
			Products:   repository.NewMongoProductRepository(db.Mongo),
			Carts:      repository.NewMongoCartRepository(db.Mongo),
			Categories: repository.NewMongoCategoryRepository(db.Mongo),
			close:      db.CloseMongo,
		}, nil
	}

	if err := db.Initialize(cfg); err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repositories{
		Users:      repository.NewUserRepository(db.GetDB()),
		Products:   repository.NewProductRepository(db.GetDB()),
		Carts:      repository.NewCartRepository(db.GetDB()),
		Categories: repository.NewCategoryRepository(db.GetDB()),
		close:      db.Close,
	}, nil
}

func (r *Repositories) Close() error {
	return r.close()
}
