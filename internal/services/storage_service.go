// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rishvigems/gems-backend/internal/backend"
	"github.com/rishvigems/gems-backend/internal/config"
	"github.com/rishvigems/gems-backend/internal/utils"
)

// PlaceholderImageURL is served whenever an image cannot be stored, so a
// product never points at a broken upload.
const PlaceholderImageURL = "/assets/products/placeholder.jpg"

const (
	imageFolder   = "products"
	maxImageBytes = 10 * 1024 * 1024 // 10MB
)

var allowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// StorageService stores product images in the blob store and resolves their
// public URLs. Upload never fails hard: demo mode and transport errors both
// degrade to the placeholder URL.
type StorageService struct {
	gateway *backend.Gateway
	cfg     *config.Config
}

func NewStorageService(gateway *backend.Gateway, cfg *config.Config) *StorageService {
	return &StorageService{gateway: gateway, cfg: cfg}
}

// UploadImage validates and stores the image, returning its public URL. On
// any failure it logs and returns PlaceholderImageURL with a nil error so the
// surrounding product write still proceeds.
func (s *StorageService) UploadImage(ctx context.Context, data []byte, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !isAllowedImageType(ext) {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", len(data), maxImageBytes)
	}

	if s.gateway.Blob() == nil {
		logrus.Info("Demo mode: image upload skipped, serving placeholder")
		return PlaceholderImageURL, nil
	}

	key := s.generateKey(ext)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.gateway.Blob().PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.gateway.Bucket()),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		logrus.WithError(err).Warn("Image upload failed, serving placeholder")
		return PlaceholderImageURL, nil
	}

	return s.publicURL(key), nil
}

// DeleteImage removes a previously uploaded image by its public URL.
func (s *StorageService) DeleteImage(ctx context.Context, imageURL string) error {
	if s.gateway.Blob() == nil {
		return fmt.Errorf("blob store not configured")
	}

	key := s.keyFromURL(imageURL)
	if key == "" {
		return fmt.Errorf("url %s is not managed by this store", imageURL)
	}

	_, err := s.gateway.Blob().DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.gateway.Bucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// Managed reports whether the URL points into this store. The placeholder and
// externally hosted images are not managed and must never be deleted.
func (s *StorageService) Managed(imageURL string) bool {
	return s.keyFromURL(imageURL) != ""
}

func (s *StorageService) generateKey(ext string) string {
	token, err := utils.GenerateRandomString(12)
	if err != nil {
		token = uuid.NewString()[:12]
	}
	return fmt.Sprintf("%s/%d-%s%s", imageFolder, time.Now().UnixMilli(), token, ext)
}

func (s *StorageService) publicURL(key string) string {
	if s.cfg.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.gateway.Bucket(), s.cfg.AWS.Region, key)
}

// keyFromURL inverts publicURL, returning the object key or "" when the URL
// lives outside this store.
func (s *StorageService) keyFromURL(imageURL string) string {
	if s.cfg.AWS.CloudFrontURL != "" {
		prefix := strings.TrimRight(s.cfg.AWS.CloudFrontURL, "/") + "/"
		if strings.HasPrefix(imageURL, prefix) {
			return strings.TrimPrefix(imageURL, prefix)
		}
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}

	host := fmt.Sprintf("%s.s3.%s.amazonaws.com", s.gateway.Bucket(), s.cfg.AWS.Region)
	if parsed.Host != host {
		return ""
	}

	return strings.TrimPrefix(parsed.Path, "/")
}

func isAllowedImageType(ext string) bool {
	for _, allowed := range allowedImageTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
