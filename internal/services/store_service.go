// internal/services/store_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/powersport/inventory-backend/internal/kvstore"
	"github.com/powersport/inventory-backend/internal/models"
	"github.com/powersport/inventory-backend/internal/sheets"
	"github.com/powersport/inventory-backend/internal/views"
	"github.com/powersport/inventory-backend/internal/whatsapp"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrWhatsappNotConfigured = errors.New("no whatsapp number configured")
)

// StoreService is the single owner of the store dataset and the per-session
// carts. Every command performs one in-memory mutation followed by one
// persistence write; no other component touches the key-value store.
//
// Carts mirror the original storefront behavior: they live only for the
// login session and are never persisted.
type StoreService struct {
	mu       sync.Mutex
	kv       kvstore.Store
	pipeline *sheets.Pipeline
	log      *logrus.Entry

	data  *models.StoreData
	carts map[string][]models.CartItem

	storeName string
}

func NewStoreService(kv kvstore.Store, pipeline *sheets.Pipeline, storeName string) *StoreService {
	return &StoreService{
		kv:        kv,
		pipeline:  pipeline,
		log:       logrus.WithField("component", "store"),
		carts:     make(map[string][]models.CartItem),
		storeName: storeName,
	}
}

// DatasetKey derives the persistence key for a store code. It is an
// explicit function of the configured code, not of whatever the user typed
// at the access gate.
func DatasetKey(code string) string {
	return "store_data_" + code
}

// Load reads the dataset for the store code, creating and persisting an
// empty shell on first access.
func (s *StoreService) Load(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, DatasetKey(code))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			s.data = models.NewStoreData(code)
			s.log.WithField("store", code).Info("created empty store dataset")
			return s.persistLocked(ctx)
		}
		return fmt.Errorf("failed to load store data: %w", err)
	}

	var data models.StoreData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("failed to decode store data: %w", err)
	}
	s.data = &data
	s.log.WithFields(logrus.Fields{
		"store":    code,
		"products": len(data.Products),
	}).Info("store dataset loaded")
	return nil
}

// Snapshot returns a copy of the current dataset; callers never see the
// owned slices.
func (s *StoreService) Snapshot() models.StoreData {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := *s.data
	data.Products = append([]models.Product(nil), s.data.Products...)
	data.Sales = append([]models.SaleRecord(nil), s.data.Sales...)
	return data
}

// Sync runs the ingestion pipeline against the configured sheet source and,
// on success, atomically replaces the product list. A failed fetch leaves
// the prior dataset completely unchanged.
func (s *StoreService) Sync(ctx context.Context) (int, error) {
	s.mu.Lock()
	source := s.data.SheetID
	s.mu.Unlock()

	// The fetch runs outside the lock; reads stay unblocked while a sync is
	// in flight and the pipeline's own guard serializes concurrent syncs.
	products, err := s.pipeline.Sync(ctx, source)
	if err != nil {
		return 0, err
	}

	if err := s.ReplaceProducts(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// ReplaceProducts swaps in a freshly imported product list as one atomic
// assignment and reconciles every cart, dropping entries whose product id no
// longer resolves.
func (s *StoreService) ReplaceProducts(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Products = products
	for session, cart := range s.carts {
		kept := cart[:0]
		for _, item := range cart {
			if _, ok := models.FindProduct(products, item.ProductID); ok {
				kept = append(kept, item)
			}
		}
		s.carts[session] = kept
	}
	return s.persistLocked(ctx)
}

// AdjustQuantity applies a ±1 stock change, floored at zero.
func (s *StoreService) AdjustQuantity(ctx context.Context, productID string, delta int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Products {
		if s.data.Products[i].ID != productID {
			continue
		}
		q := s.data.Products[i].Quantity + delta
		if q < 0 {
			q = 0
		}
		s.data.Products[i].Quantity = q
		if err := s.persistLocked(ctx); err != nil {
			return models.Product{}, err
		}
		return s.data.Products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

// UpdateSettings stores the spreadsheet source and order destination.
func (s *StoreService) UpdateSettings(ctx context.Context, sheetID, whatsappNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SheetID = sheetID
	s.data.WhatsappNumber = whatsappNumber
	return s.persistLocked(ctx)
}

// Cart returns a copy of the session's cart.
func (s *StoreService) Cart(sessionID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.CartItem(nil), s.carts[sessionID]...)
}

// AddToCart adds one unit of the product, merging with an existing entry.
func (s *StoreService) AddToCart(sessionID, productID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := models.FindProduct(s.data.Products, productID); !ok {
		return nil, ErrProductNotFound
	}

	cart := s.carts[sessionID]
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity++
			return append([]models.CartItem(nil), cart...), nil
		}
	}
	cart = append(cart, models.CartItem{ProductID: productID, Quantity: 1})
	s.carts[sessionID] = cart
	return append([]models.CartItem(nil), cart...), nil
}

// SetCartItemQuantity sets the exact quantity (>= 1) of an existing entry.
func (s *StoreService) SetCartItemQuantity(sessionID, productID string, quantity int) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[sessionID]
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity = quantity
			return append([]models.CartItem(nil), cart...), nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (s *StoreService) RemoveCartItem(sessionID, productID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[sessionID]
	for i := range cart {
		if cart[i].ProductID == productID {
			cart = append(cart[:i], cart[i+1:]...)
			s.carts[sessionID] = cart
			return append([]models.CartItem(nil), cart...), nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (s *StoreService) ClearCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}

// Order is the outbound order hand-off: the rendered message, its wa.me
// deep link and the estimated total.
type Order struct {
	Message string  `json:"message"`
	Link    string  `json:"link"`
	Total   float64 `json:"total"`
}

// Checkout builds the order message for the session's cart. It fails when
// the cart is empty or no destination number is configured; it does not
// clear the cart (the buyer may come back and resend).
func (s *StoreService) Checkout(sessionID string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[sessionID]
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}
	if s.data.WhatsappNumber == "" {
		return nil, ErrWhatsappNotConfigured
	}

	total := views.CartTotal(s.data.Products, cart)
	message := whatsapp.BuildMessage(s.storeName, s.data.Products, cart, total)
	return &Order{
		Message: message,
		Link:    whatsapp.DeepLink(s.data.WhatsappNumber, message),
		Total:   total,
	}, nil
}

// persistLocked serializes the dataset and writes it under the store's key.
// Callers hold s.mu.
func (s *StoreService) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to encode store data: %w", err)
	}
	if err := s.kv.Set(ctx, DatasetKey(s.data.Code), string(raw)); err != nil {
		return fmt.Errorf("failed to persist store data: %w", err)
	}
	return nil
}
