package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/meesho-backend/internal/storage"
	"github.com/ikkim/meesho-backend/pkg/logger"
)

var (
	ErrInvalidImageType = errors.New("only JPEG, PNG, WebP and GIF images are allowed")
	ErrMissingFilename  = errors.New("filename is required")
)

const productImageFolder = "products"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Presigner issues upload URLs. *storage.S3Storage implements it.
type Presigner interface {
	PresignUpload(ctx context.Context, filename, contentType, folder string) (*storage.PresignedURLResponse, error)
}

type UploadService interface {
	PresignProductImage(ctx context.Context, filename, contentType string) (*storage.PresignedURLResponse, error)
}

type uploadService struct {
	presigner Presigner
}

func NewUploadService(presigner Presigner) UploadService {
	return &uploadService{presigner: presigner}
}

func (s *uploadService) PresignProductImage(ctx context.Context, filename, contentType string) (*storage.PresignedURLResponse, error) {
	filename = strings.TrimSpace(filename)
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if filename == "" {
		return nil, ErrMissingFilename
	}
	if !allowedImageTypes[contentType] {
		return nil, ErrInvalidImageType
	}

	resp, err := s.presigner.PresignUpload(ctx, filename, contentType, productImageFolder)
	if err != nil {
		logger.Error("Failed to presign product image upload", err, map[string]interface{}{
			"filename":     filename,
			"content_type": contentType,
		})
		return nil, err
	}

	logger.Info("Product image upload presigned", map[string]interface{}{
		"key": resp.Key,
	})
	return resp, nil
}
