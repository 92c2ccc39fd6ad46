// internal/models/store.go
package models

// Product is a single stock-keeping unit as displayed and tracked. The json
// tags keep the persisted document byte-compatible with the datasets written
// by earlier versions of the storefront.
type Product struct {
	ID       string  `json:"id"`
	Brand    string  `json:"brand"`
	Name     string  `json:"name"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	// AddedAt is an import ordinal (base import time + row index), used only
	// to keep a deterministic order for products of the same batch.
	AddedAt int64 `json:"addedAt"`
}

// CartItem references a product by id. Quantity is always >= 1; a product
// appears at most once per cart.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type SaleRecord struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
	BuyerName   string  `json:"buyerName"`
	SoldAt      int64   `json:"soldAt"`
}

// StoreData is the whole persisted dataset of one store. It is created as an
// empty shell on first access and fully replaced (last writer wins) on every
// successful catalog sync.
type StoreData struct {
	Code           string       `json:"code"`
	SheetID        string       `json:"sheetId,omitempty"`
	WhatsappNumber string       `json:"whatsappNumber,omitempty"`
	Products       []Product    `json:"products"`
	Sales          []SaleRecord `json:"sales"`
}

// NewStoreData returns the empty shell for a store code.
func NewStoreData(code string) *StoreData {
	return &StoreData{
		Code:     code,
		Products: []Product{},
		Sales:    []SaleRecord{},
	}
}

// FindProduct returns the product with the given id, if present.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
