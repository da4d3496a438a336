package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/padoca/confeitaria/internal/checkout"
	kafkax "github.com/padoca/confeitaria/internal/kafka"
	"github.com/padoca/confeitaria/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
)

type Submitter interface {
	Submit(ctx context.Context, req checkout.SubmitRequest) (checkout.Result, error)
}

type CheckoutHandler struct {
	Checkout Submitter
	Producer *kafkax.Producer // nil disables event publishing
	Service  string
}

type checkoutReq struct {
	Mode  string `json:"mode"`
	Notes string `json:"notes"`
}

func (h *CheckoutHandler) Register(r chi.Router) {
	r.Post("/checkout", h.submit)
}

func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := reqCtx(r, 10*time.Second)
	defer cancel()

	customerID := CustomerID(r.Context())
	res, err := h.Checkout.Submit(ctx, checkout.SubmitRequest{
		CustomerID: customerID,
		Mode:       req.Mode,
		Notes:      req.Notes,
	})
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, checkout.ErrUnauthenticated):
			code = http.StatusUnauthorized
		case errors.Is(err, checkout.ErrInvalidMode),
			errors.Is(err, checkout.ErrInvalidTotal),
			errors.Is(err, checkout.ErrEmptyCart):
			code = http.StatusUnprocessableEntity
		}
		writeJSON(w, code, map[string]any{"error": err.Error(), "state": res.State})
		return
	}

	h.publishPlaced(r, customerID, res)

	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id": res.OrderID,
		"total":    res.Total,
		"state":    res.State,
	})
}

func (h *CheckoutHandler) publishPlaced(r *http.Request, customerID int64, res checkout.Result) {
	if h.Producer == nil {
		return
	}

	items := make([]orders.ItemSnapshot, 0, len(res.Lines))
	for _, l := range res.Lines {
		items = append(items, orders.ItemSnapshot{ProductID: l.ProductID, Qty: l.Qty, PriceAtMoment: l.PriceAtMoment})
	}

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: string(orders.PartitionKey(res.OrderID)),
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID:    res.OrderID,
			CustomerID: customerID,
			Mode:       string(res.Mode),
			TotalPrice: res.Total,
			Items:      items,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(res.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
