// internal/whatsapp/message.go

// Package whatsapp renders cart contents into the outbound order message and
// its wa.me deep link. No response from the messaging target is consumed.
package whatsapp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/powersport/inventory-backend/internal/models"
)

// BuildMessage renders one order line per resolvable cart item (brand, name,
// size, quantity) and a trailing total. Entries whose product no longer
// exists are skipped.
func BuildMessage(storeName string, products []models.Product, cart []models.CartItem, total float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*NUEVO PEDIDO %s*\n\n", strings.ToUpper(storeName))
	for _, item := range cart {
		p, ok := models.FindProduct(products, item.ProductID)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "✅ %s %s\n   Talle: %s | Cant: %d\n\n", p.Brand, p.Name, p.Size, item.Quantity)
	}
	fmt.Fprintf(&b, "*TOTAL A PAGAR: $%s*", FormatAmount(total))
	return b.String()
}

// DeepLink URL-encodes the message into a wa.me link for the configured
// destination number.
func DeepLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
