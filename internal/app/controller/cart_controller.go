package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/service"
	apperrors "github.com/ikkim/meesho-backend/internal/errors"
	"github.com/ikkim/meesho-backend/internal/middleware"
	"github.com/ikkim/meesho-backend/pkg/logger"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  *int    `json:"quantity"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

type UpdateCartRequest struct {
	Quantity *int    `json:"quantity"`
	Size     *string `json:"size"`
	Color    *string `json:"color"`
}

type RemoveCartItemRequest struct {
	Size  *string `json:"size"`
	Color *string `json:"color"`
}

// GetCart returns the caller's cart, creating it on first use
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cart, err := ctrl.cartService.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondCartError(c, log, err, userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart,
	})
}

// AddItem adds a product line or merges into a matching one
// POST /api/cart
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Product ID is required")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := ctrl.cartService.AddItem(c.Request.Context(), userID, req.ProductID, quantity, req.Size, req.Color)
	if err != nil {
		respondCartError(c, log, err, userID)
		return
	}

	c.JSON(http.StatusCreated, cartResponse("Item added to cart", cart))
}

// UpdateItem sets the quantity of the first matching line
// PUT /api/cart/:productId
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}
	if req.Quantity == nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidQuantity, "Quantity must be at least 1")
		return
	}

	cart, err := ctrl.cartService.UpdateItem(
		c.Request.Context(), userID, c.Param("productId"), *req.Quantity,
		service.MatchVariant(req.Size), service.MatchVariant(req.Color),
	)
	if err != nil {
		respondCartError(c, log, err, userID)
		return
	}

	c.JSON(http.StatusOK, cartResponse("Cart updated", cart))
}

// RemoveItem drops the first matching line. The body is optional.
// DELETE /api/cart/:productId
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	cart, err := ctrl.cartService.RemoveItem(
		c.Request.Context(), userID, c.Param("productId"),
		service.MatchVariant(req.Size), service.MatchVariant(req.Color),
	)
	if err != nil {
		respondCartError(c, log, err, userID)
		return
	}

	c.JSON(http.StatusOK, cartResponse("Item removed from cart", cart))
}

// ClearCart empties the caller's cart
// DELETE /api/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cart, err := ctrl.cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		respondCartError(c, log, err, userID)
		return
	}

	c.JSON(http.StatusOK, cartResponse("Cart cleared", cart))
}

func cartResponse(message string, cart *model.Cart) gin.H {
	return gin.H{
		"success": true,
		"message": message,
		"cart":    cart,
	}
}

func respondCartError(c *gin.Context, log *logger.Logger, err error, userID string) {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.ValidationInvalidQuantity, "Quantity must be at least 1")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrCartNotFound):
		apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Item not found in cart")
	default:
		log.Error("Cart operation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Respond(c, err, "cart")
	}
}
