package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/padoca/confeitaria/internal/cart"
	"github.com/padoca/confeitaria/internal/checkout"
)

// CartHandler exposes the in-memory cart. Mutations validate nothing beyond
// JSON shape on purpose: the aggregate itself ignores invalid ids and
// quantities, and GET /cart simply shows what stuck.
type CartHandler struct {
	Carts    *cart.Store
	Checkout *checkout.Service
}

type cartItemReq struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

func (h *CartHandler) Register(r chi.Router) {
	r.Get("/cart", h.view)
	r.Post("/cart/items", h.add)
	r.Put("/cart/items/{productID}", h.set)
	r.Delete("/cart/items/{productID}", h.remove)
}

func (h *CartHandler) view(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()

	rows, subtotal, err := h.Checkout.Project(ctx, CustomerID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows, "subtotal": subtotal})
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.Carts.For(CustomerID(r.Context())).Add(req.ProductID, req.Qty)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) set(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.Carts.For(CustomerID(r.Context())).Set(productID, req.Qty)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	h.Carts.For(CustomerID(r.Context())).Remove(productID)
	w.WriteHeader(http.StatusNoContent)
}
