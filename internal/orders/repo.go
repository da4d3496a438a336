package orders

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

// CreateOrder inserts the order header and returns the generated id.
// Each call is its own statement on the pool: header and items are separate
// writes, and checkout's failure handling depends on that (no shared
// transaction, no rollback of an already written header).
func (r *Repo) CreateOrder(ctx context.Context, customerID int64, placedAt time.Time, total decimal.Decimal, mode string, notes *string) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO orders(id_customer, placed_at, total_price, mode, notes)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		customerID, placedAt, total, mode, notes).Scan(&id)
	return id, err
}

// CreateOrderItem inserts one line with its price snapshot.
func (r *Repo) CreateOrderItem(ctx context.Context, orderID, productID int64, qty int, priceAtMoment decimal.Decimal) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO order_items(id_order, id_product, quantity, price_at_moment)
		VALUES ($1, $2, $3, $4)`,
		orderID, productID, qty, priceAtMoment)
	return err
}

// ListByCustomer returns a customer's order headers, newest first.
func (r *Repo) ListByCustomer(ctx context.Context, customerID int64) ([]OrderSummary, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, placed_at, total_price, mode, notes
		FROM orders WHERE id_customer = $1
		ORDER BY placed_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderSummary
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(&o.ID, &o.PlacedAt, &o.TotalPrice, &o.Mode, &o.Notes); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ItemsByOrder returns the lines of one order joined with product names.
// Scoped to the owning customer so one customer cannot read another's order.
func (r *Repo) ItemsByOrder(ctx context.Context, orderID, customerID int64) ([]OrderItemSummary, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.name, oi.quantity, oi.price_at_moment
		FROM order_items oi
		INNER JOIN orders o ON o.id = oi.id_order
		INNER JOIN product p ON p.id = oi.id_product
		WHERE oi.id_order = $1 AND o.id_customer = $2
		ORDER BY oi.id`, orderID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderItemSummary
	for rows.Next() {
		var it OrderItemSummary
		if err := rows.Scan(&it.ProductName, &it.Qty, &it.PriceAtMoment); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
