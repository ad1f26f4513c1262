package main

import (
	"context"
	"fmt"
	"os"
	"time"

	bidding "parts-auction/internal/biddingService"
	"parts-auction/internal/closer"
	"parts-auction/internal/orders"
	"parts-auction/internal/repository"
	"parts-auction/internal/server"
	"parts-auction/internal/sweeper"
	"parts-auction/utils"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	registry, ledger, orderStore := buildStores()

	biddingSvc := bidding.NewBiddingService(registry, ledger)
	materializer := orders.NewMaterializer(orderStore)
	auctionCloser := closer.NewAuctionCloser(registry, ledger, materializer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.NewSweeper(auctionCloser, sweepInterval()).Run(ctx)

	router := server.SetupRouter(biddingSvc, auctionCloser)

	port := getPort()
	utils.Info("starting auction server", map[string]any{"port": port})
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildStores wires the storage backend selected by STORAGE_BACKEND. The
// in-memory store is the default; "dynamodb" is the durable setup.
func buildStores() (repository.AuctionRegistry, repository.BidLedger, repository.OrderStore) {
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "dynamodb":
		ddb := repository.ConnectDynamoDB()
		utils.Info("using dynamodb storage backend", nil)
		return repository.NewDynamoAuctionRegistry(ddb), repository.NewDynamoBidLedger(ddb), repository.NewDynamoOrderStore(ddb)
	case "", "memory":
		utils.Info("using in-memory storage backend", nil)
		store := repository.NewMemoryStore()
		return store, store, store
	default:
		utils.Fatal("unknown STORAGE_BACKEND", map[string]any{"backend": backend})
		return nil, nil, nil
	}
}

// sweepInterval reads SWEEP_INTERVAL (Go duration) or falls back to the default.
func sweepInterval() time.Duration {
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		utils.Warn("invalid SWEEP_INTERVAL, using default", map[string]any{"value": v})
	}
	return sweeper.DefaultInterval
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
