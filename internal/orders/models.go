package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the persisted header of a submission. Created once at checkout
// and never updated or deleted afterwards; TotalPrice already includes the
// delivery fee when the mode is DELIVERY.
type Order struct {
	ID         int64
	CustomerID int64
	PlacedAt   time.Time
	TotalPrice decimal.Decimal
	Mode       string
	Notes      *string
}

// OrderItem snapshots one cart line. PriceAtMoment is the unit price at
// submission time; later catalog price changes never touch it.
type OrderItem struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	Qty           int
	PriceAtMoment decimal.Decimal
}

// Read models for the "my orders" listing.

type OrderSummary struct {
	ID         int64           `json:"id"`
	PlacedAt   time.Time       `json:"placed_at"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Mode       string          `json:"mode"`
	Notes      *string         `json:"notes,omitempty"`
}

type OrderItemSummary struct {
	ProductName   string          `json:"product_name"`
	Qty           int             `json:"qty"`
	PriceAtMoment decimal.Decimal `json:"price_at_moment"`
}
