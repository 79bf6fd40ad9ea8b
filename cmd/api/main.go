package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/velvetshop/storefront/internal/catalog"
	"github.com/velvetshop/storefront/internal/checkout"
	"github.com/velvetshop/storefront/internal/config"
	"github.com/velvetshop/storefront/internal/httpx"
	kafkax "github.com/velvetshop/storefront/internal/kafka"
	"github.com/velvetshop/storefront/internal/orders"
	"github.com/velvetshop/storefront/internal/postgres"
	"github.com/velvetshop/storefront/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
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

	// Repos and stores
	catalogRepo := &catalog.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	cartStore := &checkout.CartStore{RDB: rdb}
	detailsStore := &checkout.DetailsStore{RDB: rdb}
	lock := &checkout.SubmitLock{RDB: rdb}

	submit := checkout.NewService(cartStore, detailsStore, orderRepo, lock, prod, cfg.ServiceName)

	// Handlers
	router := httpx.NewRouter()
	(&httpx.ProductsHandler{Service: catalog.NewService(catalogRepo), Repo: catalogRepo}).Register(router)
	(&httpx.CategoriesHandler{Repo: catalogRepo}).Register(router)
	(&httpx.CartHandler{Cart: cartStore, Catalog: catalogRepo}).Register(router)
	(&httpx.CheckoutHandler{Details: detailsStore, Submit: submit, Redis: rdb}).Register(router)
	(&httpx.OrdersHandler{Repo: orderRepo, Redis: rdb}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush queued events and close the writer
	cancel()
	prod.WaitClosed()
}
