// internal/i18n/keys.go
package i18n

// Message keys shared between handlers and locale files.
const (
	KeyAuthRequired      = "auth.required"
	KeyAuthInvalidToken  = "auth.invalid_token"
	KeyAuthTokenExpired  = "auth.token_expired"
	KeyAuthInvalidCode   = "auth.invalid_code"
	KeyAuthLoginSuccess  = "auth.login_success"
	KeyAuthLogoutSuccess = "auth.logout_success"
	KeyAdminAccessDenied = "admin.access_denied"

	KeyValidationInvalid = "validation.invalid"

	KeyProductNotFound = "product.not_found"

	KeyCartEmpty        = "cart.empty"
	KeyCartItemNotFound = "cart.item_not_found"
	KeyCartCleared      = "cart.cleared"
	KeyOrderNoWhatsapp  = "order.no_whatsapp"

	KeySyncSuccess           = "sync.success"
	KeySyncNotConfigured     = "sync.not_configured"
	KeySyncSourceUnavailable = "sync.source_unavailable"
	KeySyncInProgress        = "sync.in_progress"

	KeySettingsUpdated = "settings.updated"
)
