// internal/sheets/coerce.go
package sheets

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/powersport/inventory-backend/internal/models"
)

// Defaults substituted for absent or empty cells.
const (
	DefaultBrand    = "N/A"
	DefaultName     = "PRODUCTO"
	DefaultSize     = "N/A"
	DefaultColor    = "N/A"
	DefaultCategory = "GENERAL"
)

// ColumnMap pins each product field to a spreadsheet column index, keeping
// the positional contract explicit and versionable instead of burying it in
// array offsets.
type ColumnMap struct {
	Brand    int
	Name     int
	Size     int
	Color    int
	Quantity int
	Price    int
	Cost     int
	Image    int
	Category int
}

// DefaultColumns is the column order the store's spreadsheet template uses.
var DefaultColumns = ColumnMap{
	Brand:    0,
	Name:     1,
	Size:     2,
	Color:    3,
	Quantity: 4,
	Price:    5,
	Cost:     6,
	Image:    7,
	Category: 8,
}

// Coerce maps one raw row into a typed Product. It never fails: every
// malformed or missing field degrades to its default. The product id is
// freshly generated and addedAt is importBase + rowIndex, so products of one
// batch stay strictly ordered even under a coarse clock.
func (m ColumnMap) Coerce(cells []string, rowIndex int, importBase int64) models.Product {
	return models.Product{
		ID:       uuid.NewString(),
		Brand:    m.text(cells, m.Brand, DefaultBrand),
		Name:     m.text(cells, m.Name, DefaultName),
		Size:     m.text(cells, m.Size, DefaultSize),
		Color:    m.text(cells, m.Color, DefaultColor),
		Quantity: m.integer(cells, m.Quantity),
		Price:    m.number(cells, m.Price),
		Cost:     m.number(cells, m.Cost),
		Image:    NormalizeImageURL(m.cell(cells, m.Image)),
		Category: m.text(cells, m.Category, DefaultCategory),
		AddedAt:  importBase + int64(rowIndex),
	}
}

func (m ColumnMap) cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func (m ColumnMap) text(cells []string, idx int, def string) string {
	v := m.cell(cells, idx)
	if v == "" {
		return def
	}
	return strings.ToUpper(v)
}

// quantity >= 0 always; a negative cell counts as invalid input
func (m ColumnMap) integer(cells []string, idx int) int {
	n, err := strconv.Atoi(m.cell(cells, idx))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (m ColumnMap) number(cells []string, idx int) float64 {
	f, err := strconv.ParseFloat(m.cell(cells, idx), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
