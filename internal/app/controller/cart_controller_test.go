package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartControllerTest(t *testing.T) (*gin.Engine, *model.Product) {
	testDB := setupTestDB(t)

	productRepo := repository.NewProductRepository(testDB)
	cartService := service.NewCartService(repository.NewCartRepository(testDB), productRepo)
	cartController := NewCartController(cartService)

	product := &model.Product{
		Title:      "Cotton Kurti",
		Price:      250,
		ProductURL: "https://example.com/p/kurti",
		Tags:       model.Tags{},
	}
	require.NoError(t, productRepo.Create(context.Background(), product))

	router := newTestRouter()
	authed := router.Group("/cart", asUser("user-1", false))
	authed.GET("", cartController.GetCart)
	authed.POST("", cartController.AddItem)
	authed.PUT("/:productId", cartController.UpdateItem)
	authed.DELETE("/:productId", cartController.RemoveItem)
	authed.DELETE("", cartController.ClearCart)

	router.GET("/anonymous/cart", cartController.GetCart)

	return router, product
}

func cartField(t *testing.T, response map[string]interface{}) map[string]interface{} {
	cart, ok := response["cart"].(map[string]interface{})
	require.True(t, ok, "response has a cart object")
	return cart
}

func TestCartController_GetCart_CreatesEmptyCart(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	w, response := doJSON(t, router, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	cart := cartField(t, response)
	assert.Equal(t, "user-1", cart["user_id"])
	assert.Equal(t, float64(0), cart["total_items"])
	assert.Empty(t, cart["items"])
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	w, response := doJSON(t, router, http.MethodGet, "/anonymous/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "AUTH_UNAUTHORIZED", response["error"])
}

func TestCartController_AddItem(t *testing.T) {
	router, product := setupCartControllerTest(t)

	w, response := doJSON(t, router, http.MethodPost, "/cart", gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Item added to cart", response["message"])

	cart := cartField(t, response)
	assert.Equal(t, float64(1), cart["total_items"], "quantity defaults to 1")
	assert.Equal(t, float64(250), cart["total_price"])

	items := cart["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, product.ID, line["product_id"])
	assert.Nil(t, line["size"])
	summary := line["product"].(map[string]interface{})
	assert.Equal(t, "Cotton Kurti", summary["title"])
}

func TestCartController_AddItem_Errors(t *testing.T) {
	router, product := setupCartControllerTest(t)

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantCode   string
	}{
		{"missing product id", gin.H{"quantity": 1}, http.StatusBadRequest, "VALIDATION_REQUIRED"},
		{"zero quantity", gin.H{"product_id": product.ID, "quantity": 0}, http.StatusBadRequest, "VALIDATION_INVALID_QUANTITY"},
		{"unknown product", gin.H{"product_id": "missing"}, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := doJSON(t, router, http.MethodPost, "/cart", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, response["error"])
		})
	}
}

func TestCartController_UpdateAndRemove(t *testing.T) {
	router, product := setupCartControllerTest(t)

	w, _ := doJSON(t, router, http.MethodPut, "/cart/"+product.ID, gin.H{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code, "no cart yet")

	doJSON(t, router, http.MethodPost, "/cart", gin.H{"product_id": product.ID, "size": "M"})
	doJSON(t, router, http.MethodPost, "/cart", gin.H{"product_id": product.ID, "size": "L"})

	w, response := doJSON(t, router, http.MethodPut, "/cart/"+product.ID, gin.H{"quantity": 4, "size": "L"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cart updated", response["message"])
	cart := cartField(t, response)
	assert.Equal(t, float64(5), cart["total_items"])

	w, response = doJSON(t, router, http.MethodPut, "/cart/"+product.ID, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_QUANTITY", response["error"])

	w, response = doJSON(t, router, http.MethodPut, "/cart/"+product.ID, gin.H{"quantity": 1, "size": "XL"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", response["error"])

	w, response = doJSON(t, router, http.MethodDelete, "/cart/"+product.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, "body is optional")
	assert.Equal(t, "Item removed from cart", response["message"])
	cart = cartField(t, response)
	assert.Equal(t, float64(4), cart["total_items"], "wildcard removes the first line")

	w, response = doJSON(t, router, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cart cleared", response["message"])
	cart = cartField(t, response)
	assert.Equal(t, float64(0), cart["total_items"])
	assert.Equal(t, float64(0), cart["total_price"])
}

func TestCartController_ClearCart_NoCart(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	w, response := doJSON(t, router, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Cart not found", response["message"])
}
