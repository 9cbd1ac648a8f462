package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/service"
	apperrors "github.com/ikkim/meesho-backend/internal/errors"
	"github.com/ikkim/meesho-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	productService service.ProductService
	uploadService  service.UploadService
}

func NewAdminController(productService service.ProductService, uploadService service.UploadService) *AdminController {
	return &AdminController{
		productService: productService,
		uploadService:  uploadService,
	}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// ImportProducts loads products from an uploaded spreadsheet
// POST /api/admin/products/import (multipart field "file")
func (ctrl *AdminController) ImportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "An .xlsx file is required in field \"file\"")
		return
	}

	file, err := header.Open()
	if err != nil {
		log.Error("Failed to open uploaded spreadsheet", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	defer file.Close()

	result, err := ctrl.productService.ImportProducts(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSpreadsheet) {
			log.Warn("Rejected product spreadsheet", map[string]interface{}{
				"filename": header.Filename,
				"error":    err.Error(),
			})
			apperrors.BadRequest(c, apperrors.ImportInvalidFile, "File is not a valid product spreadsheet")
			return
		}
		log.Error("Product import failed", err, map[string]interface{}{
			"filename": header.Filename,
		})
		apperrors.Respond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// ExportProducts streams every product as a spreadsheet
// GET /api/admin/products/export
func (ctrl *AdminController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := ctrl.productService.ExportProducts(c.Request.Context(), c.Writer); err != nil {
		log.Error("Product export failed", err, nil)
		if !c.Writer.Written() {
			c.Header("Content-Disposition", "")
			apperrors.Respond(c, err, "product")
		}
	}
}

// PresignUpload issues an S3 upload URL for a product image
// POST /api/admin/uploads/presign
func (ctrl *AdminController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Filename and content type are required")
		return
	}

	resp, err := ctrl.uploadService.PresignProductImage(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidImageType):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		case errors.Is(err, service.ErrMissingFilename):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Filename and content type are required")
		default:
			log.Error("Failed to generate presigned URL", err, nil)
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"upload_url": resp.UploadURL,
		"file_url":   resp.FileURL,
		"key":        resp.Key,
		"expires_at": resp.ExpiresAt,
	})
}
