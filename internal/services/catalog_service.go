// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rishvigems/gems-backend/internal/backend"
	"github.com/rishvigems/gems-backend/internal/models"
	"github.com/rishvigems/gems-backend/internal/utils"
)

// listLimit caps every catalog listing, live or demo.
const listLimit = 20

// demoWriteDelay simulates backend latency for demo-mode writes so the admin
// UI exercises its pending states.
const demoWriteDelay = 200 * time.Millisecond

// BlobStore is the slice of the storage service the catalog needs for
// image cleanup during product deletion.
type BlobStore interface {
	Managed(imageURL string) bool
	DeleteImage(ctx context.Context, imageURL string) error
}

// CatalogService queries and mutates the product catalog, uniformly whether
// backed by the live document store or the in-memory demo dataset.
type CatalogService struct {
	gateway  *backend.Gateway
	sessions *SessionService
	blobs    BlobStore
}

type ListParams struct {
	Category string
	Search   string
	RentOnly bool
}

type CreateProductRequest struct {
	Name         string               `json:"name" validate:"required,max=255"`
	Description  string               `json:"description"`
	Price        float64              `json:"price" validate:"min=0"`
	Category     models.Category      `json:"category" validate:"required,category"`
	FunctionType *models.FunctionType `json:"function_type" validate:"omitempty,function_type"`
	ImageURL     string               `json:"image_url"`
	IsForSale    bool                 `json:"is_for_sale"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string          `json:"description,omitempty"`
	Price       *float64         `json:"price,omitempty" validate:"omitempty,min=0"`
	Category    *models.Category `json:"category,omitempty" validate:"omitempty,category"`
	// A JSON null and an omitted field both decode to nil here, so an
	// update cannot clear function_type once set.
	FunctionType *models.FunctionType `json:"function_type,omitempty" validate:"omitempty,function_type"`
	ImageURL     *string              `json:"image_url,omitempty"`
	IsForSale    *bool                `json:"is_for_sale,omitempty"`
}

// ImageCleanup reports the outcome of the best-effort blob deletion that runs
// before a product record is removed, so callers can observe failures that
// did not abort the deletion.
type ImageCleanup struct {
	Attempted bool   `json:"attempted"`
	Deleted   bool   `json:"deleted"`
	Error     string `json:"error,omitempty"`
}

func NewCatalogService(gateway *backend.Gateway, sessions *SessionService, blobs BlobStore) *CatalogService {
	return &CatalogService{
		gateway:  gateway,
		sessions: sessions,
		blobs:    blobs,
	}
}

// List returns catalog entries matching the filters. Category and rent-only
// filtering run in the store when live; text search is always applied here
// because the document store has no full-text operator on this path. The read
// path never fails: any backend error degrades to the demo dataset filtered
// by the same arguments.
func (s *CatalogService) List(ctx context.Context, params ListParams) []models.Product {
	if !s.gateway.Live() {
		return filterProducts(models.DemoCatalog(), params)
	}

	query := s.gateway.DB().WithContext(ctx).Model(&models.Product{})

	if params.Category != "" && params.Category != models.CategoryAll {
		query = query.Where("category = ?", params.Category)
	}

	if params.RentOnly {
		query = query.Where("is_for_sale = ?", false)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Limit(listLimit).Find(&products).Error; err != nil {
		logrus.WithError(err).Warn("Catalog query failed, serving demo catalog")
		return filterProducts(models.DemoCatalog(), params)
	}

	products = sanitizeRecords(products)

	if term := strings.TrimSpace(params.Search); term != "" {
		products = searchProducts(products, term)
	}

	return products
}

// Create adds a catalog entry. Requires an active session. In demo mode the
// result is synthesized and not retained: callers must not expect
// read-after-write consistency there.
func (s *CatalogService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if s.sessions.Current() == nil {
		return nil, fmt.Errorf("%w to add products", ErrUnauthorized)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	price := req.Price
	if !req.IsForSale {
		// rental pieces carry no sale price
		price = 0
	}

	product := models.Product{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        price,
		Category:     req.Category,
		FunctionType: req.FunctionType,
		ImageURL:     req.ImageURL,
		IsForSale:    req.IsForSale,
	}

	if !s.gateway.Live() {
		time.Sleep(demoWriteDelay)
		now := time.Now()
		product.ID = fmt.Sprintf("demo-%d", now.UnixMilli())
		product.CreatedAt = now
		product.UpdatedAt = now
		logrus.Info("Demo mode: product synthesized, not persisted")
		return &product, nil
	}

	if err := s.gateway.DB().WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to add product, please check your connection and try again: %w", err)
	}

	return &product, nil
}

// Update applies partial fields to a catalog entry. Requires an active
// session. Demo mode synthesizes the result without storing it.
func (s *CatalogService) Update(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	if s.sessions.Current() == nil {
		return nil, fmt.Errorf("%w to update products", ErrUnauthorized)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !s.gateway.Live() {
		time.Sleep(demoWriteDelay)
		product := demoProductByID(id)
		applyUpdates(&product, req)
		product.UpdatedAt = time.Now()
		logrus.Info("Demo mode: update synthesized, not persisted")
		return &product, nil
	}

	var product models.Product
	if err := s.gateway.DB().WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := buildUpdates(req)
	if len(updates) > 0 {
		if err := s.gateway.DB().WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	if err := s.gateway.DB().WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

// Delete removes a catalog entry. The stored image is deleted first when it
// lives in the managed blob store; that step is best effort and its outcome
// is reported in the returned ImageCleanup, never as an error.
func (s *CatalogService) Delete(ctx context.Context, id string) (*ImageCleanup, error) {
	if s.sessions.Current() == nil {
		return nil, fmt.Errorf("%w to delete products", ErrUnauthorized)
	}

	cleanup := &ImageCleanup{}

	if !s.gateway.Live() {
		logrus.WithField("id", id).Info("Demo mode: delete is a no-op")
		return cleanup, nil
	}

	var product models.Product
	if err := s.gateway.DB().WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if s.blobs != nil && s.blobs.Managed(product.ImageURL) {
		cleanup.Attempted = true
		if err := s.blobs.DeleteImage(ctx, product.ImageURL); err != nil {
			cleanup.Error = err.Error()
			logrus.WithError(err).WithField("id", id).Warn("Image cleanup failed, deleting record anyway")
		} else {
			cleanup.Deleted = true
		}
	}

	if err := s.gateway.DB().WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return cleanup, nil
}

// Helpers

func filterProducts(products []models.Product, params ListParams) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	term := strings.TrimSpace(params.Search)

	for _, p := range products {
		if params.Category != "" && params.Category != models.CategoryAll && string(p.Category) != params.Category {
			continue
		}
		if params.RentOnly && p.IsForSale {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		filtered = append(filtered, p)
	}

	if len(filtered) > listLimit {
		filtered = filtered[:listLimit]
	}
	return filtered
}

func searchProducts(products []models.Product, term string) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesSearch(p, term) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesSearch(p models.Product, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

// sanitizeRecords rejects malformed rows at the store boundary rather than
// propagating them to the view layer.
func sanitizeRecords(products []models.Product) []models.Product {
	sane := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" || strings.TrimSpace(p.Name) == "" {
			logrus.WithField("id", p.ID).Warn("Dropping malformed catalog record")
			continue
		}
		sane = append(sane, p)
	}
	return sane
}

func demoProductByID(id string) models.Product {
	for _, p := range models.DemoCatalog() {
		if p.ID == id {
			return p
		}
	}
	product := models.Product{}
	product.ID = id
	product.CreatedAt = time.Now()
	return product
}

func applyUpdates(product *models.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.FunctionType != nil {
		product.FunctionType = req.FunctionType
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsForSale != nil {
		product.IsForSale = *req.IsForSale
	}
	if !product.IsForSale {
		product.Price = 0
	}
}

func buildUpdates(req *UpdateProductRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.FunctionType != nil {
		updates["function_type"] = *req.FunctionType
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsForSale != nil {
		updates["is_for_sale"] = *req.IsForSale
		if !*req.IsForSale {
			updates["price"] = float64(0)
		}
	}
	return updates
}
