// internal/whatsapp/message_test.go
package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powersport/inventory-backend/internal/models"
)

func TestBuildMessage(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Brand: "NIKE", Name: "AIRMAX", Size: "42", Price: 100},
		{ID: "p2", Brand: "FOX", Name: "CASCO V1", Size: "M", Price: 250},
	}
	cart := []models.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}

	msg := BuildMessage("powersport", products, cart, 450)

	assert.True(t, strings.HasPrefix(msg, "*NUEVO PEDIDO POWERSPORT*\n\n"))
	assert.Contains(t, msg, "✅ NIKE AIRMAX\n   Talle: 42 | Cant: 2\n\n")
	assert.Contains(t, msg, "✅ FOX CASCO V1\n   Talle: M | Cant: 1\n\n")
	assert.True(t, strings.HasSuffix(msg, "*TOTAL A PAGAR: $450*"))
}

func TestBuildMessageSkipsMissingProducts(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Brand: "NIKE", Name: "AIRMAX", Size: "42"},
	}
	cart := []models.CartItem{
		{ProductID: "gone", Quantity: 3},
		{ProductID: "p1", Quantity: 1},
	}

	msg := BuildMessage("POWERSPORT", products, cart, 100)

	assert.Equal(t, 1, strings.Count(msg, "✅"))
	assert.Contains(t, msg, "NIKE AIRMAX")
}

func TestDeepLinkRoundTrip(t *testing.T) {
	msg := "*NUEVO PEDIDO POWERSPORT*\n\n✅ NIKE AIRMAX\n   Talle: 42 | Cant: 2\n\n*TOTAL A PAGAR: $200*"

	link := DeepLink("5491122334455", msg)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5491122334455?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, msg, parsed.Query().Get("text"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "450", FormatAmount(450))
	assert.Equal(t, "100.5", FormatAmount(100.5))
	assert.Equal(t, "0", FormatAmount(0))
}
