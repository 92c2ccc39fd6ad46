// internal/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/powersport/inventory-backend/internal/i18n"
	"github.com/powersport/inventory-backend/internal/services"
	"github.com/powersport/inventory-backend/internal/sheets"
	"github.com/powersport/inventory-backend/internal/utils"
)

// AdminHandler covers the settings form and the spreadsheet sync trigger.
type AdminHandler struct {
	storeService *services.StoreService
}

func NewAdminHandler(storeService *services.StoreService) *AdminHandler {
	return &AdminHandler{
		storeService: storeService,
	}
}

type updateSettingsRequest struct {
	SheetURL       string `json:"sheet_url"`
	WhatsappNumber string `json:"whatsapp_number" validate:"omitempty,numeric"`
}

// GET /settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	data := h.storeService.Snapshot()

	utils.SuccessResponse(c, gin.H{
		"sheet_url":       data.SheetID,
		"whatsapp_number": data.WhatsappNumber,
	})
}

// PUT /settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.storeService.UpdateSettings(c.Request.Context(), req.SheetURL, req.WhatsappNumber); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySettingsUpdated),
	})
}

// POST /sync
func (h *AdminHandler) SyncCatalog(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	imported, err := h.storeService.Sync(c.Request.Context())
	if err != nil {
		var sourceErr *sheets.SourceError
		switch {
		case errors.Is(err, sheets.ErrNotConfigured):
			utils.NotConfiguredResponse(c, i18n.KeySyncNotConfigured)
		case errors.Is(err, sheets.ErrSyncInProgress):
			utils.ErrorResponse(c, http.StatusConflict, "SYNC_IN_PROGRESS", i18n.T(lang, i18n.KeySyncInProgress), nil)
		case errors.As(err, &sourceErr):
			utils.ErrorResponse(c, http.StatusBadGateway, "SOURCE_UNAVAILABLE", i18n.T(lang, i18n.KeySyncSourceUnavailable), sourceErr.URL)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeySyncSuccess),
		"imported": imported,
		"source":   sheets.ExportURL(h.storeService.Snapshot().SheetID),
	})
}
