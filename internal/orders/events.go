package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "OrderPlaced"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type ItemSnapshot struct {
	ProductID     int64           `json:"product_id"`
	Qty           int             `json:"qty"`
	PriceAtMoment decimal.Decimal `json:"price_at_moment"`
}

// OrderPlacedPayload is published after a submission commits. Consumers
// (the notifier) only ever see fully committed orders; partial writes stay
// out of the stream.
type OrderPlacedPayload struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"customer_id"`
	Mode       string          `json:"mode"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []ItemSnapshot  `json:"items,omitempty"`
}
