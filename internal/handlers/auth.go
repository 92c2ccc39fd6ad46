// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/powersport/inventory-backend/internal/i18n"
	"github.com/powersport/inventory-backend/internal/services"
	"github.com/powersport/inventory-backend/internal/utils"
)

type AuthHandler struct {
	authService  *services.AuthService
	storeService *services.StoreService
}

func NewAuthHandler(authService *services.AuthService, storeService *services.StoreService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		storeService: storeService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAccessCode) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCode))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"token":        authResponse.Token,
		"token_type":   authResponse.TokenType,
		"expires_in":   authResponse.ExpiresIn,
		"role":         authResponse.Role,
		"store_code":   authResponse.StoreCode,
		"display_mode": authResponse.DisplayMode,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if sessionID, exists := utils.GetSessionFromContext(c); exists {
		h.storeService.ClearCart(sessionID)
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// GET /auth/me
func (h *AuthHandler) GetSession(c *gin.Context) {
	sessionID, exists := utils.GetSessionFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	role, _ := utils.GetRoleFromContext(c)
	storeCode, _ := c.Get("store_code")

	utils.SuccessResponse(c, gin.H{
		"session_id": sessionID,
		"role":       role,
		"store_code": storeCode,
	})
}
