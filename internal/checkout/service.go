package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/padoca/confeitaria/internal/cart"
	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/shopspring/decimal"
)

// Service runs the checkout pipeline: cart projection for display and the
// order submission protocol. One instance serves all customers; per-cart
// serialization comes from the cart's own lock.
type Service struct {
	Carts   *cart.Store
	Catalog CatalogLookup
	Fees    FeeResolver
	Orders  OrderStore
	Lines   LineStore

	// Now stamps the order header; tests pin it. Defaults to time.Now.
	Now func() time.Time
}

type SubmitRequest struct {
	CustomerID int64
	Mode       string
	Notes      string
}

// Result reports how a submission ended. State is terminal on return:
// Committed on success, PartiallyWritten when a write failed after the
// header went in, Pending when validation rejected the request before any
// write.
type Result struct {
	OrderID int64
	Total   decimal.Decimal
	Mode    Mode
	State   SubmissionState
	// Lines actually written, with their price snapshots. Shorter than the
	// cart when products disappeared between carting and checkout.
	Lines []WrittenLine
}

// WrittenLine is one persisted order line as checkout priced it.
type WrittenLine struct {
	ProductID     int64
	Qty           int
	PriceAtMoment decimal.Decimal
}

// Submit validates the request and persists the order: header first, then
// one line per cart entry in insertion order, each priced from a fresh
// catalog fetch. There is no transaction and no rollback: a line write
// failure leaves the header and earlier lines in the store, reports
// PartiallyWritten and keeps the cart intact. Only a fully committed
// submission clears the cart.
//
// The whole protocol runs under the cart lock, so a concurrent Add cannot
// land between the last line write and the clear, and two submissions for
// the same cart cannot interleave.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Result, error) {
	res := Result{State: StatePending}

	if req.CustomerID <= 0 {
		return res, ErrUnauthenticated
	}
	mode, ok := ParseMode(req.Mode)
	if !ok {
		return res, ErrInvalidMode
	}
	res.Mode = mode

	err := s.Carts.For(req.CustomerID).WithLock(func(v cart.View) error {
		if v.IsEmpty() {
			return ErrEmptyCart
		}
		lines := v.Snapshot()

		total, err := s.total(ctx, req.CustomerID, mode, lines)
		if err != nil {
			return err
		}
		if total.IsNegative() {
			return ErrInvalidTotal
		}
		res.Total = total

		orderID, err := s.Orders.CreateOrder(ctx, req.CustomerID, s.now(), total, string(mode), trimNotes(req.Notes))
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		res.OrderID = orderID
		res.advance(StateHeaderWritten)

		res.advance(StateLinesWriting)
		for _, line := range lines {
			// Fetched again on purpose: the charged price is the catalog's
			// current one, not whatever the projection showed earlier.
			p, err := s.Catalog.FindProduct(ctx, line.ProductID)
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			if err != nil {
				res.advance(StatePartiallyWritten)
				return fmt.Errorf("load product %d: %w", line.ProductID, err)
			}

			unit := catalog.UnitPrice(p)
			if err := s.Lines.CreateOrderItem(ctx, orderID, line.ProductID, line.Qty, unit); err != nil {
				res.advance(StatePartiallyWritten)
				return fmt.Errorf("create order item for product %d: %w", line.ProductID, err)
			}
			res.Lines = append(res.Lines, WrittenLine{ProductID: line.ProductID, Qty: line.Qty, PriceAtMoment: unit})
		}

		res.advance(StateCommitted)
		v.Clear()
		return nil
	})
	return res, err
}

// total prices the snapshot from the current catalog (missing products
// contribute nothing, same skip rule the line writes apply) and adds the
// delivery fee when applicable.
func (s *Service) total(ctx context.Context, customerID int64, mode Mode, lines []cart.Line) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		p, err := s.Catalog.FindProduct(ctx, line.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return decimal.Zero, err
		}
		subtotal = subtotal.Add(catalog.UnitPrice(p).Mul(decimal.NewFromInt(int64(line.Qty))))
	}

	if mode != ModeDelivery {
		return subtotal, nil
	}
	fee, err := s.Fees.FeeFor(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("resolve delivery fee: %w", err)
	}
	return subtotal.Add(fee), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func trimNotes(notes string) *string {
	t := strings.TrimSpace(notes)
	if t == "" {
		return nil
	}
	return &t
}
