// internal/handlers/cart.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/powersport/inventory-backend/internal/i18n"
	"github.com/powersport/inventory-backend/internal/models"
	"github.com/powersport/inventory-backend/internal/services"
	"github.com/powersport/inventory-backend/internal/utils"
	"github.com/powersport/inventory-backend/internal/views"
)

type CartHandler struct {
	storeService *services.StoreService
}

func NewCartHandler(storeService *services.StoreService) *CartHandler {
	return &CartHandler{
		storeService: storeService,
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type setCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// cartItemView resolves a cart entry against the current product list.
type cartItemView struct {
	models.CartItem
	Product *models.Product `json:"product,omitempty"`
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, _ := utils.GetSessionFromContext(c)
	h.respondCart(c, h.storeService.Cart(sessionID))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionFromContext(c)

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.storeService.AddToCart(sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	h.respondCart(c, cart)
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionFromContext(c)

	var req setCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.storeService.SetCartItemQuantity(sessionID, c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			utils.NotFoundResponse(c, i18n.KeyCartItemNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	h.respondCart(c, cart)
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, _ := utils.GetSessionFromContext(c)

	cart, err := h.storeService.RemoveCartItem(sessionID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			utils.NotFoundResponse(c, i18n.KeyCartItemNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	h.respondCart(c, cart)
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionFromContext(c)

	h.storeService.ClearCart(sessionID)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}

// POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionFromContext(c)

	order, err := h.storeService.Checkout(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartEmpty):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
		case errors.Is(err, services.ErrWhatsappNotConfigured):
			utils.NotConfiguredResponse(c, i18n.KeyOrderNoWhatsapp)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// respondCart renders the cart with entries resolved against the product
// list. Entries whose product vanished are skipped from the item views but
// still echoed in the raw cart.
func (h *CartHandler) respondCart(c *gin.Context, cart []models.CartItem) {
	data := h.storeService.Snapshot()

	items := make([]cartItemView, 0, len(cart))
	for _, item := range cart {
		view := cartItemView{CartItem: item}
		if p, ok := models.FindProduct(data.Products, item.ProductID); ok {
			view.Product = &p
		}
		items = append(items, view)
	}

	utils.SuccessResponse(c, gin.H{
		"items": items,
		"total": views.CartTotal(data.Products, cart),
	})
}
