package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/padoca/confeitaria/internal/cart"
	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/padoca/confeitaria/internal/checkout"
	"github.com/padoca/confeitaria/internal/config"
	"github.com/padoca/confeitaria/internal/customers"
	"github.com/padoca/confeitaria/internal/httpx"
	kafkax "github.com/padoca/confeitaria/internal/kafka"
	"github.com/padoca/confeitaria/internal/orders"
	"github.com/padoca/confeitaria/internal/postgres"
	"github.com/padoca/confeitaria/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	// Repos & services
	catalogRepo := &catalog.Repo{DB: db}
	customerRepo := &customers.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	sessions := &customers.Sessions{R: rdb}
	auth := &customers.Auth{
		Repo:     customerRepo,
		Sessions: sessions,
		Admins:   customers.NewWhitelist(cfg.AdminEmails),
	}
	carts := cart.NewStore()
	checkoutSvc := &checkout.Service{
		Carts:   carts,
		Catalog: catalogRepo,
		Fees:    customerRepo,
		Orders:  orderRepo,
		Lines:   orderRepo,
	}

	// Router
	router := httpx.NewRouter()
	authn := &httpx.Authenticator{Sessions: sessions}

	ah := &httpx.AuthHandler{Auth: auth}
	ah.Register(router)

	ch := &httpx.CatalogHandler{Repo: catalogRepo, Auth: auth}
	ch.Register(router)

	router.Group(func(r chi.Router) {
		r.Use(authn.Require)
		ah.RegisterAuthed(r)
		ch.RegisterAdmin(r)
		(&httpx.CartHandler{Carts: carts, Checkout: checkoutSvc}).Register(r)
		(&httpx.CheckoutHandler{Checkout: checkoutSvc, Producer: prod, Service: cfg.ServiceName}).Register(r)
		(&httpx.OrdersHandler{Repo: orderRepo}).Register(r)
	})

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush queued events
	cancel()
	prod.WaitClosed()
}
