package repository

import (
	"context"
	"time"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"gorm.io/gorm"
)

// CartRepository loads and stores whole cart aggregates.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Cart, error)
	// Create inserts an empty cart. ErrDuplicate means the user already has one.
	Create(ctx context.Context, cart *model.Cart) error
	// Save replaces the stored items and totals with the cart's current state.
	Save(ctx context.Context, cart *model.Cart) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID string) (*model.Cart, error) {
	logger.Debug("Finding cart by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		err = translateError(err)
		if err != ErrNotFound {
			logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return &cart, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	logger.Debug("Creating cart in database", map[string]interface{}{
		"user_id": cart.UserID,
	})

	if err := r.db.WithContext(ctx).Omit("Items").Create(cart).Error; err != nil {
		err = translateError(err)
		if err != ErrDuplicate {
			logger.Error("Failed to create cart in database", err, map[string]interface{}{
				"user_id": cart.UserID,
			})
		}
		return err
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return nil
}

func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	logger.Debug("Saving cart in database", map[string]interface{}{
		"cart_id":     cart.ID,
		"user_id":     cart.UserID,
		"item_count":  len(cart.Items),
		"total_items": cart.TotalItems,
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cart.ID == "" {
			if err := tx.Omit("Items").Create(cart).Error; err != nil {
				return err
			}
		} else {
			cart.UpdatedAt = time.Now()
			if err := tx.Model(&model.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
				"total_items": cart.TotalItems,
				"total_price": cart.TotalPrice,
				"updated_at":  cart.UpdatedAt,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}

		rows := make([]model.CartItem, len(cart.Items))
		for i, item := range cart.Items {
			item.ID = 0
			item.CartID = cart.ID
			item.Position = i
			item.Product = nil
			rows[i] = item
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		logger.Error("Failed to save cart in database", err, map[string]interface{}{
			"cart_id": cart.ID,
			"user_id": cart.UserID,
		})
		return translateError(err)
	}
	return nil
}
