package checkout

import (
	"context"
	"time"

	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/shopspring/decimal"
)

// In-memory collaborator fakes. Write failures are armed per call index so
// tests can break the protocol at an exact step.

type fakeCatalog struct {
	products map[int64]catalog.Product
	err      error // infrastructure failure on every call when set
}

func (f *fakeCatalog) FindProduct(_ context.Context, id int64) (catalog.Product, error) {
	if f.err != nil {
		return catalog.Product{}, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

type fakeFees struct {
	fee decimal.Decimal
	err error
}

func (f *fakeFees) FeeFor(context.Context, int64) (decimal.Decimal, error) {
	return f.fee, f.err
}

type headerRec struct {
	CustomerID int64
	PlacedAt   time.Time
	Total      decimal.Decimal
	Mode       string
	Notes      *string
}

type fakeOrderStore struct {
	headers []headerRec
	err     error
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, customerID int64, placedAt time.Time, total decimal.Decimal, mode string, notes *string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.headers = append(f.headers, headerRec{customerID, placedAt, total, mode, notes})
	return int64(len(f.headers)), nil
}

type lineRec struct {
	OrderID   int64
	ProductID int64
	Qty       int
	Price     decimal.Decimal
}

type fakeLineStore struct {
	lines  []lineRec
	failOn int // 1-based call index that fails; 0 never fails
	calls  int
	err    error
}

func (f *fakeLineStore) CreateOrderItem(_ context.Context, orderID, productID int64, qty int, price decimal.Decimal) error {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return f.err
	}
	f.lines = append(f.lines, lineRec{orderID, productID, qty, price})
	return nil
}

func product(id int64, unit string) catalog.Product {
	return catalog.Product{ID: id, Name: "product", BasePrice: decimal.RequireFromString(unit)}
}
