package service

import (
	"context"
	"errors"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/pkg/logger"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("item not found in cart")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// VariantMatch selects cart lines by size or color. Any matches every
// stored value, absent included; Exact matches only an equal stored value.
type VariantMatch struct {
	value string
	any   bool
}

func ExactVariant(value string) VariantMatch {
	return VariantMatch{value: value}
}

func AnyVariant() VariantMatch {
	return VariantMatch{any: true}
}

// MatchVariant treats a missing or empty request value as Any.
func MatchVariant(value *string) VariantMatch {
	if value == nil || *value == "" {
		return AnyVariant()
	}
	return ExactVariant(*value)
}

func (m VariantMatch) IsAny() bool {
	return m.any
}

func (m VariantMatch) matches(stored *string) bool {
	if m.any {
		return true
	}
	return stored != nil && *stored == m.value
}

type CartService interface {
	GetOrCreate(ctx context.Context, userID string) (*model.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int, size, color *string) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int, size, color VariantMatch) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string, size, color VariantMatch) (*model.Cart, error)
	Clear(ctx context.Context, userID string) (*model.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.resolve(ctx, cart)
	return cart, nil
}

// loadOrCreate returns the user's cart, creating an empty one on first use.
// A concurrent create surfaces as ErrDuplicate and is resolved by re-reading.
func (s *cartService) loadOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	cart = &model.Cart{UserID: userID, Items: []model.CartItem{}}
	err = s.cartRepo.Create(ctx, cart)
	if errors.Is(err, repository.ErrDuplicate) {
		return s.cartRepo.FindByUserID(ctx, userID)
	}
	if err != nil {
		logger.Error("Failed to create cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Cart created", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID, productID string, quantity int, size, color *string) (*model.Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	size, color = normalizeVariant(size), normalizeVariant(color)
	merged := false
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ProductID == productID && sameVariant(item.Size, size) && sameVariant(item.Color, color) {
			item.Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
			Size:      size,
			Color:     color,
		})
	}

	return s.persist(ctx, cart)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, productID string, quantity int, size, color VariantMatch) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, idx, err := s.findLine(ctx, userID, productID, size, color)
	if err != nil {
		return nil, err
	}

	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":      userID,
		"product_id":   productID,
		"old_quantity": cart.Items[idx].Quantity,
		"new_quantity": quantity,
	})
	cart.Items[idx].Quantity = quantity

	return s.persist(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID string, size, color VariantMatch) (*model.Cart, error) {
	cart, idx, err := s.findLine(ctx, userID, productID, size, color)
	if err != nil {
		return nil, err
	}

	logger.Info("Removing item from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	return s.persist(ctx, cart)
}

func (s *cartService) Clear(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	logger.Info("Clearing cart", map[string]interface{}{
		"user_id":    userID,
		"item_count": len(cart.Items),
	})
	cart.Items = []model.CartItem{}

	return s.persist(ctx, cart)
}

// findLine loads the cart and locates the first line for productID whose
// variant satisfies both matchers.
func (s *cartService) findLine(ctx context.Context, userID, productID string, size, color VariantMatch) (*model.Cart, int, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, -1, ErrCartNotFound
		}
		return nil, -1, err
	}

	for i, item := range cart.Items {
		if item.ProductID == productID && size.matches(item.Size) && color.matches(item.Color) {
			return cart, i, nil
		}
	}

	logger.Warn("Cart item not found", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil, -1, ErrCartItemNotFound
}

func (s *cartService) persist(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	recalculateTotals(cart)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		logger.Error("Failed to save cart", err, map[string]interface{}{
			"user_id": cart.UserID,
			"cart_id": cart.ID,
		})
		return nil, err
	}
	s.resolve(ctx, cart)
	return cart, nil
}

// resolve attaches current product summaries for display. Lines whose
// product no longer exists keep a nil summary; lookup failures are logged
// and leave the cart unresolved.
func (s *cartService) resolve(ctx context.Context, cart *model.Cart) {
	if len(cart.Items) == 0 {
		return
	}

	ids := make([]string, 0, len(cart.Items))
	seen := make(map[string]bool, len(cart.Items))
	for _, item := range cart.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to resolve cart products", map[string]interface{}{
			"cart_id": cart.ID,
			"error":   err.Error(),
		})
		return
	}

	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range cart.Items {
		if p, ok := byID[cart.Items[i].ProductID]; ok {
			cart.Items[i].Product = p.Summary()
		}
	}
}

func recalculateTotals(cart *model.Cart) {
	totalItems := 0
	totalPrice := 0.0
	for _, item := range cart.Items {
		totalItems += item.Quantity
		totalPrice += float64(item.Quantity) * item.Price
	}
	cart.TotalItems = totalItems
	cart.TotalPrice = totalPrice
}

func normalizeVariant(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	value := *v
	return &value
}

func sameVariant(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
