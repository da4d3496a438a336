package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/padoca/confeitaria/internal/orders"
)

// OrdersHandler serves the "my orders" read side.
type OrdersHandler struct {
	Repo *orders.Repo
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/orders", h.listMine)
	r.Get("/orders/{id}/items", h.items)
}

func (h *OrdersHandler) listMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()

	out, err := h.Repo.ListByCustomer(ctx, CustomerID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) items(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()

	out, err := h.Repo.ItemsByOrder(ctx, orderID, CustomerID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}
