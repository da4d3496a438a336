package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/padoca/confeitaria/internal/customers"
	kafkax "github.com/padoca/confeitaria/internal/kafka"
	"github.com/padoca/confeitaria/internal/orders"
	"github.com/padoca/confeitaria/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service turns committed orders into customer confirmations. Delivery here
// is just a log line; the point of the consumer is taking notification work
// off the checkout request path.
type Service struct {
	Customers   *customers.Repo
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderPlaced is installed as the consumer handler for order.placed.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// dedup by event id; redelivery must not notify twice
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	email, err := s.Customers.Email(ctx, p.CustomerID)
	if errors.Is(err, customers.ErrNotFound) {
		log.Printf("order %d: customer %d has no account on file, skipping notification", p.OrderID, p.CustomerID)
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("notify %s: order %d confirmed, %d item(s), total %s, %s",
		email, p.OrderID, len(p.Items), p.TotalPrice.StringFixed(2), p.Mode)
	return nil
}
