package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/app/service"
	"github.com/ikkim/meesho-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPresigner struct{}

func (stubPresigner) PresignUpload(ctx context.Context, filename, contentType, folder string) (*storage.PresignedURLResponse, error) {
	return &storage.PresignedURLResponse{
		UploadURL: "https://uploads.example.com/" + folder + "/" + filename + "?X-Amz-Signature=abc",
		FileURL:   "https://uploads.example.com/" + folder + "/" + filename,
		Key:       folder + "/" + filename,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func setupAdminControllerTest(t *testing.T) (*gin.Engine, repository.ProductRepository) {
	testDB := setupTestDB(t)
	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo, nil)
	adminController := NewAdminController(productService, service.NewUploadService(stubPresigner{}))
	productController := NewProductController(productService)

	router := newTestRouter()
	admin := router.Group("/admin", asUser("admin-1", true))
	admin.POST("/products/import", adminController.ImportProducts)
	admin.GET("/products/export", adminController.ExportProducts)
	admin.POST("/uploads/presign", adminController.PresignUpload)
	admin.POST("/products", productController.CreateProduct)
	router.GET("/products", productController.ListProducts)
	router.GET("/products/:id", productController.GetProduct)
	return router, productRepo
}

func multipartSpreadsheet(t *testing.T, content []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "products.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAdminController_ExportThenImport(t *testing.T) {
	router, productRepo := setupAdminControllerTest(t)
	require.NoError(t, productRepo.Create(context.Background(), &model.Product{
		Title: "Silk Saree", Tags: model.Tags{"silk"}, Price: 450, ProductURL: "https://example.com/p/1",
	}))

	w, _ := doJSON(t, router, http.MethodGet, "/admin/products/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	exported := w.Body.Bytes()
	require.NotEmpty(t, exported)

	// importing the same sheet back finds only duplicates
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartSpreadsheet(t, exported))
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Success bool                 `json:"success"`
		Result  service.ImportResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 1, response.Result.Total)
	assert.Equal(t, 1, response.Result.Duplicates)
	assert.Equal(t, 0, response.Result.Imported)
}

func TestAdminController_Import_InvalidFile(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartSpreadsheet(t, []byte("plain text")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "IMPORT_INVALID_FILE")

	w, response := doJSON(t, router, http.MethodPost, "/admin/products/import", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_REQUIRED", response["error"])
}

func TestAdminController_PresignUpload(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	w, response := doJSON(t, router, http.MethodPost, "/admin/uploads/presign", gin.H{
		"filename":     "saree.png",
		"content_type": "image/png",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "products/saree.png", response["key"])
	assert.Contains(t, response["upload_url"], "X-Amz-Signature")

	w, response = doJSON(t, router, http.MethodPost, "/admin/uploads/presign", gin.H{
		"filename":     "notes.txt",
		"content_type": "text/plain",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UPLOAD_INVALID_FILE_TYPE", response["error"])
}

func TestProductController_CreateAndGet(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	body := gin.H{"title": "Kurti", "price": 349, "product_url": "https://example.com/p/kurti", "tags": []string{"cotton"}}
	w, response := doJSON(t, router, http.MethodPost, "/admin/products", body)
	require.Equal(t, http.StatusCreated, w.Code)
	product := response["product"].(map[string]interface{})
	id := product["id"].(string)

	w, response = doJSON(t, router, http.MethodPost, "/admin/products", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PRODUCT_URL_EXISTS", response["error"])

	w, response = doJSON(t, router, http.MethodGet, "/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kurti", response["product"].(map[string]interface{})["title"])

	w, response = doJSON(t, router, http.MethodGet, "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", response["error"])

	w, response = doJSON(t, router, http.MethodGet, "/products?limit=abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(20), response["limit"])
	assert.Equal(t, float64(1), response["total"])
}
