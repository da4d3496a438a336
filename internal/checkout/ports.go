package checkout

import (
	"context"
	"time"

	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/shopspring/decimal"
)

// Collaborator contracts. Production wiring uses the pgx repos from
// internal/catalog, internal/customers and internal/orders; tests substitute
// in-memory fakes.

// CatalogLookup resolves a product id to the current catalog record.
// A missing product is catalog.ErrNotFound; anything else is an
// infrastructure failure.
type CatalogLookup interface {
	FindProduct(ctx context.Context, id int64) (catalog.Product, error)
}

// FeeResolver returns the flat delivery fee for a customer, zero when the
// customer has no delivery area on file.
type FeeResolver interface {
	FeeFor(ctx context.Context, customerID int64) (decimal.Decimal, error)
}

// OrderStore durably creates the order header and returns its generated id.
type OrderStore interface {
	CreateOrder(ctx context.Context, customerID int64, placedAt time.Time, total decimal.Decimal, mode string, notes *string) (int64, error)
}

// LineStore durably creates one order line with the price captured at
// submission time.
type LineStore interface {
	CreateOrderItem(ctx context.Context, orderID, productID int64, qty int, priceAtMoment decimal.Decimal) error
}
