// internal/models/common.go
package models

// Enums
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

type DisplayMode string

const (
	// DisplayModeStock is the internal inventory-management view; it shows
	// every product regardless of stock.
	DisplayModeStock DisplayMode = "stock"
	// DisplayModeCatalog is the customer-facing view; only purchasable
	// products (quantity > 0) are shown.
	DisplayModeCatalog DisplayMode = "catalog"
)

// CategoryAll is the synthetic marker selecting every category. The literal
// matches what the storefront has always used ("TODO" = Spanish for "all").
const CategoryAll = "TODO"

// DefaultDisplayMode returns the view a freshly logged-in user lands on.
func DefaultDisplayMode(role UserRole) DisplayMode {
	if role == RoleAdmin {
		return DisplayModeStock
	}
	return DisplayModeCatalog
}
