// internal/handlers/catalog.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/powersport/inventory-backend/internal/i18n"
	"github.com/powersport/inventory-backend/internal/models"
	"github.com/powersport/inventory-backend/internal/services"
	"github.com/powersport/inventory-backend/internal/utils"
	"github.com/powersport/inventory-backend/internal/views"
)

type CatalogHandler struct {
	storeService *services.StoreService
}

func NewCatalogHandler(storeService *services.StoreService) *CatalogHandler {
	return &CatalogHandler{
		storeService: storeService,
	}
}

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

// GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	search := c.Query("search")
	category := strings.ToUpper(strings.TrimSpace(c.Query("category")))
	if category == "" {
		category = models.CategoryAll
	}

	mode := h.displayMode(c)
	data := h.storeService.Snapshot()
	filtered := views.Filter(data.Products, search, category, mode)

	utils.SuccessResponse(c, gin.H{
		"products":     filtered,
		"categories":   views.Categories(data.Products),
		"display_mode": mode,
		"total":        len(filtered),
	})
}

// GET /catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	data := h.storeService.Snapshot()

	utils.SuccessResponse(c, gin.H{
		"categories": views.Categories(data.Products),
	})
}

// PATCH /products/:id/quantity
func (h *CatalogHandler) AdjustQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.storeService.AdjustQuantity(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// displayMode resolves the effective view: viewers always get the catalog
// view; admins default to stock and may request catalog explicitly.
func (h *CatalogHandler) displayMode(c *gin.Context) models.DisplayMode {
	role, _ := utils.GetRoleFromContext(c)
	if role != string(models.RoleAdmin) {
		return models.DisplayModeCatalog
	}
	if c.Query("mode") == string(models.DisplayModeCatalog) {
		return models.DisplayModeCatalog
	}
	return models.DisplayModeStock
}
