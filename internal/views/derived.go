// internal/views/derived.go

// Package views holds the pure derived computations over the store dataset:
// the category set, the filtered catalog subset and the cart total. They are
// recomputed on demand and never mutate their inputs.
package views

import (
	"sort"
	"strings"

	"github.com/powersport/inventory-backend/internal/models"
)

// Categories returns the distinct upper-cased non-empty categories across
// all products, sorted ascending, with the "all" marker first.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	cats := make([]string, 0, len(products))
	for _, p := range products {
		c := strings.ToUpper(p.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append([]string{models.CategoryAll}, cats...)
}

// Filter returns the ordered subsequence of products matching the search
// string (case-insensitive substring of name or brand) and the selected
// category. In catalog mode only in-stock products qualify. Relative order
// follows the source list.
func Filter(products []models.Product, search, category string, mode models.DisplayMode) []models.Product {
	q := strings.ToLower(search)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if mode == models.DisplayModeCatalog && p.Quantity <= 0 {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		if category != models.CategoryAll && strings.ToUpper(p.Category) != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CartTotal sums price * quantity over cart entries. An entry referencing a
// missing product contributes 0.
func CartTotal(products []models.Product, cart []models.CartItem) float64 {
	var total float64
	for _, item := range cart {
		if p, ok := models.FindProduct(products, item.ProductID); ok {
			total += p.Price * float64(item.Quantity)
		}
	}
	return total
}
