// internal/services/store_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powersport/inventory-backend/internal/kvstore"
	"github.com/powersport/inventory-backend/internal/models"
	"github.com/powersport/inventory-backend/internal/sheets"
)

type stubFetcher struct {
	body string
	err  error
}

func (f *stubFetcher) Fetch(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

func newTestService(t *testing.T, fetcher sheets.Fetcher) (*StoreService, *kvstore.Memory) {
	t.Helper()

	kv := kvstore.NewMemory()
	svc := NewStoreService(kv, sheets.NewPipeline(fetcher), "POWERSPORT")
	require.NoError(t, svc.Load(context.Background(), "POWERSPORT"))
	return svc, kv
}

func readDataset(t *testing.T, kv *kvstore.Memory) models.StoreData {
	t.Helper()

	raw, err := kv.Get(context.Background(), DatasetKey("POWERSPORT"))
	require.NoError(t, err)

	var data models.StoreData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestLoadCreatesEmptyDataset(t *testing.T) {
	svc, kv := newTestService(t, &stubFetcher{})

	data := readDataset(t, kv)
	assert.Equal(t, "POWERSPORT", data.Code)
	assert.Empty(t, data.Products)

	snap := svc.Snapshot()
	assert.Equal(t, "POWERSPORT", snap.Code)
}

func TestLoadReadsExistingDataset(t *testing.T) {
	kv := kvstore.NewMemory()
	existing := models.StoreData{
		Code:     "POWERSPORT",
		Products: []models.Product{{ID: "p1", Name: "AIRMAX"}},
	}
	raw, err := json.Marshal(existing)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), DatasetKey("POWERSPORT"), string(raw)))

	svc := NewStoreService(kv, sheets.NewPipeline(&stubFetcher{}), "POWERSPORT")
	require.NoError(t, svc.Load(context.Background(), "POWERSPORT"))

	snap := svc.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "AIRMAX", snap.Products[0].Name)
}

func TestSyncReplacesProductsAndPersists(t *testing.T) {
	svc, kv := newTestService(t, &stubFetcher{body: "H\nNIKE,AirMax,42,BLACK,5,100,60,,CALZADO"})
	require.NoError(t, svc.UpdateSettings(context.Background(), "https://example.com/data.csv", ""))

	imported, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	data := readDataset(t, kv)
	require.Len(t, data.Products, 1)
	assert.Equal(t, "NIKE", data.Products[0].Brand)
}

func TestSyncNotConfigured(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})

	_, err := svc.Sync(context.Background())

	assert.ErrorIs(t, err, sheets.ErrNotConfigured)
}

func TestSyncFailureLeavesDatasetUntouched(t *testing.T) {
	fetcher := &stubFetcher{body: "H\nNIKE,AirMax,42,BLACK,5,100,60,,CALZADO"}
	svc, _ := newTestService(t, fetcher)
	require.NoError(t, svc.UpdateSettings(context.Background(), "https://example.com/data.csv", ""))

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	fetcher.err = errors.New("connection refused")
	_, err = svc.Sync(context.Background())

	var sourceErr *sheets.SourceError
	assert.ErrorAs(t, err, &sourceErr)
	assert.Len(t, svc.Snapshot().Products, 1)
}

func TestReplaceProductsDropsStaleCartEntries(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1", Name: "AIRMAX"},
		{ID: "p2", Name: "SAMBA"},
	}))

	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)
	_, err = svc.AddToCart("session-1", "p2")
	require.NoError(t, err)

	// A fresh import keeps only one of the two products.
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p2", Name: "SAMBA"},
	}))

	cart := svc.Cart("session-1")
	require.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].ProductID)
}

func TestAdjustQuantityFloorsAtZero(t *testing.T) {
	svc, kv := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1", Quantity: 1},
	}))

	p, err := svc.AdjustQuantity(context.Background(), "p1", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)

	p, err = svc.AdjustQuantity(context.Background(), "p1", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)

	data := readDataset(t, kv)
	assert.Equal(t, 0, data.Products[0].Quantity)
}

func TestAdjustQuantityUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})

	_, err := svc.AdjustQuantity(context.Background(), "missing", 1)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartIsPerSession(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1", Price: 100},
	}))

	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)

	assert.Len(t, svc.Cart("session-1"), 1)
	assert.Empty(t, svc.Cart("session-2"))
}

func TestAddToCartMergesQuantities(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1", Price: 100},
	}))

	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)
	cart, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})

	_, err := svc.AddToCart("session-1", "missing")

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSetCartItemQuantity(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1", Price: 100},
	}))

	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)

	cart, err := svc.SetCartItemQuantity("session-1", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart[0].Quantity)

	_, err = svc.SetCartItemQuantity("session-1", "missing", 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveCartItem(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1"}, {ID: "p2"},
	}))

	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)
	_, err = svc.AddToCart("session-1", "p2")
	require.NoError(t, err)

	cart, err := svc.RemoveCartItem("session-1", "p1")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].ProductID)

	_, err = svc.RemoveCartItem("session-1", "p1")
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCheckout(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1", Brand: "NIKE", Name: "AIRMAX", Size: "42", Price: 100},
	}))
	require.NoError(t, svc.UpdateSettings(context.Background(), "", "5491122334455"))

	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)

	order, err := svc.Checkout("session-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, order.Total)
	assert.Contains(t, order.Message, "NIKE AIRMAX")
	assert.Contains(t, order.Link, "https://wa.me/5491122334455?text=")

	// Checkout does not clear the cart.
	assert.Len(t, svc.Cart("session-1"), 1)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})

	_, err := svc.Checkout("session-1")

	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutWithoutWhatsappNumber(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1", Price: 100},
	}))
	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)

	_, err = svc.Checkout("session-1")

	assert.ErrorIs(t, err, ErrWhatsappNotConfigured)
}

func TestClearCart(t *testing.T) {
	svc, _ := newTestService(t, &stubFetcher{})
	require.NoError(t, svc.ReplaceProducts(context.Background(), []models.Product{
		{ID: "p1"},
	}))
	_, err := svc.AddToCart("session-1", "p1")
	require.NoError(t, err)

	svc.ClearCart("session-1")

	assert.Empty(t, svc.Cart("session-1"))
}
