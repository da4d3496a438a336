package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/padoca/confeitaria/internal/cart"
	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	svc     *Service
	carts   *cart.Store
	catalog *fakeCatalog
	fees    *fakeFees
	orders  *fakeOrderStore
	lines   *fakeLineStore
}

func newFixture() *fixture {
	f := &fixture{
		carts:   cart.NewStore(),
		catalog: &fakeCatalog{products: map[int64]catalog.Product{}},
		fees:    &fakeFees{fee: decimal.Zero},
		orders:  &fakeOrderStore{},
		lines:   &fakeLineStore{},
	}
	f.svc = &Service{
		Carts:   f.carts,
		Catalog: f.catalog,
		Fees:    f.fees,
		Orders:  f.orders,
		Lines:   f.lines,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestSubmitRoundTrip(t *testing.T) {
	f := newFixture()
	f.catalog.products[1] = product(1, "10.00")
	f.catalog.products[2] = product(2, "25.00")

	c := f.carts.For(42)
	c.Add(1, 2)
	c.Add(2, 1)

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP", Notes: "  "})
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, res.State)
	assert.True(t, res.Total.Equal(d("45.00")), "total %s", res.Total)

	require.Len(t, f.orders.headers, 1)
	h := f.orders.headers[0]
	assert.Equal(t, int64(42), h.CustomerID)
	assert.Equal(t, "PICKUP", h.Mode)
	assert.True(t, h.Total.Equal(d("45.00")))
	assert.Nil(t, h.Notes, "blank notes normalize to absent")
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), h.PlacedAt)

	require.Len(t, f.lines.lines, 2)
	assert.Equal(t, int64(1), f.lines.lines[0].ProductID)
	assert.Equal(t, 2, f.lines.lines[0].Qty)
	assert.True(t, f.lines.lines[0].Price.Equal(d("10.00")))
	assert.Equal(t, int64(2), f.lines.lines[1].ProductID)
	assert.Equal(t, 1, f.lines.lines[1].Qty)
	assert.True(t, f.lines.lines[1].Price.Equal(d("25.00")))

	assert.True(t, c.IsEmpty(), "cart clears only after full success")
}

func TestSubmitDeliveryAddsFee(t *testing.T) {
	f := newFixture()
	f.catalog.products[1] = product(1, "10.00")
	f.fees.fee = d("12.00")
	f.carts.For(42).Add(1, 1)

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "delivery"})
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(d("22.00")), "total %s", res.Total)
	assert.Equal(t, ModeDelivery, res.Mode)
}

func TestSubmitNotesAreTrimmed(t *testing.T) {
	f := newFixture()
	f.catalog.products[1] = product(1, "10.00")
	f.carts.For(42).Add(1, 1)

	_, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP", Notes: "  sem lactose  "})
	require.NoError(t, err)
	require.NotNil(t, f.orders.headers[0].Notes)
	assert.Equal(t, "sem lactose", *f.orders.headers[0].Notes)
}

func TestSubmitUnauthenticated(t *testing.T) {
	f := newFixture()

	for _, id := range []int64{0, -3} {
		_, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: id, Mode: "PICKUP"})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
	assert.Empty(t, f.orders.headers)
}

func TestSubmitInvalidMode(t *testing.T) {
	f := newFixture()
	f.carts.For(42).Add(1, 1)

	for _, mode := range []string{"", "   ", "DRONE"} {
		_, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: mode})
		assert.ErrorIs(t, err, ErrInvalidMode, "mode %q", mode)
	}
	assert.Empty(t, f.orders.headers)
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP"})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StatePending, res.State)
	assert.Empty(t, f.orders.headers, "no writes on validation failure")
	assert.Empty(t, f.lines.lines)
}

func TestSubmitNegativeTotalRejected(t *testing.T) {
	f := newFixture()
	f.catalog.products[1] = product(1, "5.00")
	f.fees.fee = d("-20.00")
	f.carts.For(42).Add(1, 1)

	_, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "DELIVERY"})
	assert.ErrorIs(t, err, ErrInvalidTotal)
	assert.Empty(t, f.orders.headers)
}

func TestSubmitSkipsVanishedProducts(t *testing.T) {
	f := newFixture()
	f.catalog.products[1] = product(1, "10.00")
	// product 2 was carted, then deleted from the catalog

	c := f.carts.For(42)
	c.Add(1, 2)
	c.Add(2, 1)

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP"})
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, res.State)
	require.Len(t, f.lines.lines, 1, "vanished product writes no line and raises no error")
	assert.Equal(t, int64(1), f.lines.lines[0].ProductID)
	assert.True(t, res.Total.Equal(d("20.00")), "vanished product contributes nothing to the total")
	assert.True(t, c.IsEmpty())
}

func TestSubmitHeaderFailureLeavesCartUntouched(t *testing.T) {
	f := newFixture()
	f.catalog.products[1] = product(1, "10.00")
	f.orders.err = errors.New("connection reset")
	f.carts.For(42).Add(1, 1)

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "create order")

	assert.Equal(t, StatePending, res.State)
	assert.Empty(t, f.lines.lines)
	assert.False(t, f.carts.For(42).IsEmpty())
}

func TestSubmitLineFailureKeepsPartialWrites(t *testing.T) {
	f := newFixture()
	for id := int64(1); id <= 3; id++ {
		f.catalog.products[id] = product(id, "10.00")
	}
	storeErr := errors.New("disk full")
	f.lines.failOn = 2
	f.lines.err = storeErr

	c := f.carts.For(42)
	c.Add(1, 1)
	c.Add(2, 1)
	c.Add(3, 1)

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP"})
	require.ErrorIs(t, err, storeErr)

	// no rollback: header and first line stay persisted
	assert.Equal(t, StatePartiallyWritten, res.State)
	assert.Len(t, f.orders.headers, 1)
	require.Len(t, f.lines.lines, 1)
	assert.Equal(t, int64(1), f.lines.lines[0].ProductID)

	// and the cart survives for a retry
	assert.Len(t, c.Snapshot(), 3)
}

func TestSubmitLookupFailureAborts(t *testing.T) {
	f := newFixture()
	f.catalog.err = errors.New("catalog db down")
	f.carts.For(42).Add(1, 1)

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyCart)

	// failure happened while totalling, before any write
	assert.Equal(t, StatePending, res.State)
	assert.Empty(t, f.orders.headers)
	assert.False(t, f.carts.For(42).IsEmpty())
}

func TestSubmitChargesCurrentPriceNotProjected(t *testing.T) {
	f := newFixture()
	f.catalog.products[1] = product(1, "10.00")
	f.carts.For(42).Add(1, 1)

	rows, _, err := f.svc.Project(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, rows[0].Unit.Equal(d("10.00")))

	// price change between viewing the cart and confirming
	f.catalog.products[1] = product(1, "13.00")

	res, err := f.svc.Submit(context.Background(), SubmitRequest{CustomerID: 42, Mode: "PICKUP"})
	require.NoError(t, err)
	assert.True(t, f.lines.lines[0].Price.Equal(d("13.00")), "charged price follows the catalog, not the preview")
	assert.True(t, res.Total.Equal(d("13.00")))
}

func TestParseMode(t *testing.T) {
	cases := map[string]struct {
		mode Mode
		ok   bool
	}{
		"DELIVERY":   {ModeDelivery, true},
		"pickup":     {ModePickup, true},
		" Delivery ": {ModeDelivery, true},
		"":           {"", false},
		"  ":         {"", false},
		"mail":       {"", false},
	}
	for in, want := range cases {
		mode, ok := ParseMode(in)
		assert.Equal(t, want.ok, ok, "input %q", in)
		assert.Equal(t, want.mode, mode, "input %q", in)
	}
}
