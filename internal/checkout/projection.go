package checkout

import (
	"context"
	"errors"

	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/shopspring/decimal"
)

// Row is one displayable cart line with prices as of this projection.
type Row struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Unit      decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"line_total"`
}

// Project builds the display view of a customer's cart: one row per line
// that still resolves in the catalog, plus the subtotal. Lines whose product
// has disappeared are dropped without error; the cart itself is untouched.
// Prices here are a best-effort preview; Submit recomputes them from its
// own catalog fetch, so an admin price change between viewing and
// confirming shows up in the charged price, not the previewed one.
func (s *Service) Project(ctx context.Context, customerID int64) ([]Row, decimal.Decimal, error) {
	rows := []Row{}
	subtotal := decimal.Zero

	for _, line := range s.Carts.For(customerID).Snapshot() {
		p, err := s.Catalog.FindProduct(ctx, line.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, decimal.Zero, err
		}

		unit := catalog.UnitPrice(p)
		total := unit.Mul(decimal.NewFromInt(int64(line.Qty)))
		subtotal = subtotal.Add(total)
		rows = append(rows, Row{
			ProductID: line.ProductID,
			Name:      p.Name,
			Qty:       line.Qty,
			Unit:      unit,
			Total:     total,
		})
	}
	return rows, subtotal, nil
}
