// internal/handlers/catalog.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishvigems/gems-backend/internal/i18n"
	"github.com/rishvigems/gems-backend/internal/models"
	"github.com/rishvigems/gems-backend/internal/services"
	"github.com/rishvigems/gems-backend/internal/utils"
)

type CatalogHandler struct {
	catalog *services.CatalogService
	storage *services.StorageService
}

func NewCatalogHandler(catalog *services.CatalogService, storage *services.StorageService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		storage: storage,
	}
}

// GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	params := services.ListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		RentOnly: c.Query("rent_only") == "true",
	}

	products := h.catalog.List(c.Request.Context(), params)

	utils.SuccessResponse(c, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"categories":     models.Categories(),
		"function_types": models.FunctionTypes(),
	})
}

// POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.UnauthorizedResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID := c.Param("id")

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.catalog.Update(c.Request.Context(), productID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			utils.UnauthorizedResponse(c, err.Error())
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID := c.Param("id")

	cleanup, err := h.catalog.Delete(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			utils.UnauthorizedResponse(c, err.Error())
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "DELETE_FAILED", err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyProductDeleted),
		"image_cleanup": cleanup,
	})
}

// POST /products/upload-image
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, exists := utils.GetUserIDFromContext(c); !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "image"), err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "image"), err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read uploaded file")
		return
	}

	url, err := h.storage.UploadImage(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url":         url,
		"filename":    fileHeader.Filename,
		"size":        fileHeader.Size,
		"placeholder": url == services.PlaceholderImageURL,
	})
}
