package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/velvetshop/storefront/internal/catalog"
	"github.com/velvetshop/storefront/internal/config"
	"github.com/velvetshop/storefront/internal/fulfillment"
	kafkax "github.com/velvetshop/storefront/internal/kafka"
	"github.com/velvetshop/storefront/internal/orders"
	"github.com/velvetshop/storefront/internal/postgres"
	"github.com/velvetshop/storefront/internal/redisx"
	"github.com/velvetshop/storefront/internal/shutdown"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicProductPublished, 256)
	prod.Start(ctx)

	// scheduled products going live
	promoter := &fulfillment.Promoter{
		Catalog:     &catalog.Repo{DB: db},
		Producer:    prod,
		ServiceName: cfg.ServiceName,
		Interval:    cfg.PromoteInterval,
	}
	go promoter.Run(ctx)

	// stock deduction for placed orders
	svc := &fulfillment.Service{
		Repo:        &fulfillment.StockRepo{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName,
	}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, "storefront-worker", orders.TopicOrderPlaced, 4)
	log.Printf("worker consuming %s", orders.TopicOrderPlaced)
	if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
		log.Fatalf("consumer: %v", err)
	}

	prod.Close()
	prod.WaitClosed()
}
