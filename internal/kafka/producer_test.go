package kafka

import (
	"context"
	"testing"
)

// Shutdown closes the inbox via Close and cancels the context; both paths
// race into the loop and must not close the channel twice.
func TestProducerShutdownCloseAndCancel(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := NewProducer([]string{"127.0.0.1:9092"}, "orders.test", 8)
		ctx, cancel := context.WithCancel(context.Background())
		p.Start(ctx)
		p.Close()
		cancel()
		p.WaitClosed()
	}
}

func TestProducerCloseIsIdempotent(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:9092"}, "orders.test", 8)
	p.Start(context.Background())
	p.Close()
	p.Close()
	p.WaitClosed()
}
