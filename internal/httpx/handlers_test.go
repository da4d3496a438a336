package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padoca/confeitaria/internal/cart"
	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/padoca/confeitaria/internal/checkout"
)

type stubCatalog struct {
	products map[int64]catalog.Product
}

func (s *stubCatalog) FindProduct(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

type stubSubmitter struct {
	req checkout.SubmitRequest
	res checkout.Result
	err error
}

func (s *stubSubmitter) Submit(_ context.Context, req checkout.SubmitRequest) (checkout.Result, error) {
	s.req = req
	return s.res, s.err
}

// asCustomer stamps the customer id the way Authenticator.Require would.
func asCustomer(r *http.Request, id int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), customerIDKey, id))
}

func cartRouter(t *testing.T, customerID int64) (*chi.Mux, *cart.Store) {
	t.Helper()
	carts := cart.NewStore()
	svc := &checkout.Service{
		Carts: carts,
		Catalog: &stubCatalog{products: map[int64]catalog.Product{
			1: {ID: 1, Name: "Bolo de Cenoura", BasePrice: decimal.RequireFromString("30.00")},
		}},
		Now: time.Now,
	}
	h := &CartHandler{Carts: carts, Checkout: svc}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, asCustomer(req, customerID))
		})
	})
	h.Register(r)
	return r, carts
}

func TestCartEndpoints(t *testing.T) {
	r, carts := cartRouter(t, 42)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec
	}

	rec := do(http.MethodPost, "/cart/items", `{"product_id":1,"qty":2}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Items    []checkout.Row  `json:"items"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Qty)
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("60.00")))

	rec = do(http.MethodPut, "/cart/items/1", `{"qty":5}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []cart.Line{{ProductID: 1, Qty: 5}}, carts.For(42).Snapshot())

	rec = do(http.MethodDelete, "/cart/items/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, carts.For(42).IsEmpty())

	rec = do(http.MethodPut, "/cart/items/abc", `{"qty":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, "/cart/items", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutSuccess(t *testing.T) {
	stub := &stubSubmitter{res: checkout.Result{
		OrderID: 7,
		Total:   decimal.RequireFromString("45.00"),
		Mode:    checkout.ModePickup,
		State:   checkout.StateCommitted,
	}}
	h := &CheckoutHandler{Checkout: stub}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"mode":"PICKUP","notes":"sem lactose"}`))
	h.submit(rec, asCustomer(req, 42))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), stub.req.CustomerID)
	assert.Equal(t, "PICKUP", stub.req.Mode)
	assert.Equal(t, "sem lactose", stub.req.Notes)

	var body struct {
		OrderID int64           `json:"order_id"`
		Total   decimal.Decimal `json:"total"`
		State   string          `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.OrderID)
	assert.True(t, body.Total.Equal(decimal.RequireFromString("45.00")))
	assert.Equal(t, string(checkout.StateCommitted), body.State)
}

func TestCheckoutErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", checkout.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid mode", checkout.ErrInvalidMode, http.StatusUnprocessableEntity},
		{"invalid total", checkout.ErrInvalidTotal, http.StatusUnprocessableEntity},
		{"empty cart", checkout.ErrEmptyCart, http.StatusUnprocessableEntity},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stub := &stubSubmitter{err: c.err, res: checkout.Result{State: checkout.StatePartiallyWritten}}
			h := &CheckoutHandler{Checkout: stub}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"mode":"DELIVERY"}`))
			h.submit(rec, asCustomer(req, 42))

			require.Equal(t, c.code, rec.Code)
			var body struct {
				Error string `json:"error"`
				State string `json:"state"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, c.err.Error(), body.Error)
			assert.Equal(t, string(checkout.StatePartiallyWritten), body.State)
		})
	}
}

func TestDeleteByIDStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"missing", catalog.ErrNotFound, http.StatusNotFound},
		{"referenced by order lines", catalog.ErrInUse, http.StatusConflict},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := &CatalogHandler{}
			r := chi.NewRouter()
			r.Delete("/admin/products/{id}", func(w http.ResponseWriter, req *http.Request) {
				h.deleteByID(w, req, func(context.Context, int64) error { return c.err })
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/products/3", nil))
			assert.Equal(t, c.code, rec.Code)
		})
	}
}

func TestCheckoutRejectsBadJSON(t *testing.T) {
	h := &CheckoutHandler{Checkout: &stubSubmitter{}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{`))
	h.submit(rec, asCustomer(req, 42))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
