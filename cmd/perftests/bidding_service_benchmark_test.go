package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	bidding "parts-auction/internal/biddingService"
	model "parts-auction/internal/models"
	repository "parts-auction/internal/repository"

	"github.com/shopspring/decimal"
)

func seedAuction(b *testing.B, store *repository.MemoryStore, id string, currentPrice int64) {
	b.Helper()
	now := time.Now()
	err := store.CreateAuction(context.Background(), model.Auction{
		AuctionID:    id,
		ListingID:    "listing-" + id,
		SellerID:     "seller_bench",
		StartPrice:   decimal.NewFromInt(currentPrice),
		CurrentPrice: decimal.NewFromInt(currentPrice),
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(time.Hour),
		Status:       model.StatusActive,
	})
	if err != nil {
		b.Fatalf("failed to seed auction: %v", err)
	}
}

// Benchmark 1: PlaceBid - Isolated Auctions (Low Contention - Micro Benchmark)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, store)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		seedAuction(b, store, fmt.Sprintf("auction_%d", i), 1000)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		bidderID := fmt.Sprintf("bidder_%d", i)
		auctionID := fmt.Sprintf("auction_%d", i)
		amount := decimal.NewFromInt(1000 + 100 + int64(rand.Intn(100)))
		if _, _, err := svc.PlaceBid(ctx, auctionID, bidderID, amount); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Auction (High Contention - Concurrency Benchmark)
func Benchmark_PlaceBid_ConcurrentSharedAuction(b *testing.B) {
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, store)
	ctx := context.Background()

	seedAuction(b, store, "shared_auction_1", 1000)

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 1000

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			bidderID := fmt.Sprintf("bidder_parallel_%d", rnd.Int())

			// Each bid clears the increment over whatever the price has ratcheted to.
			nextBid := atomic.AddInt64(&lastBid, 100+int64(rnd.Intn(50)))
			_, _, _ = svc.PlaceBid(ctx, "shared_auction_1", bidderID, decimal.NewFromInt(nextBid))
		}
	})
}

// Benchmark 3: GetWinningBid - Single - Threaded (Low Contention)
func Benchmark_GetWinningBid_SingleThreaded(b *testing.B) {
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, store)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("auction_%d", i)
		seedAuction(b, store, auctionID, 1000)

		for j := 0; j < 10; j++ {
			bidderID := fmt.Sprintf("bidder_%d_%d", i, j)
			amount := decimal.NewFromInt(1000 + int64(j+1)*100)
			_, _, _ = svc.PlaceBid(ctx, auctionID, bidderID, amount)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("auction_%d", i)
		if _, err := svc.GetWinningBid(ctx, auctionID); err != nil {
			b.Fatalf("failed to get winning bid: %v", err)
		}
	}
}

// Benchmark 4: GetWinningBid - Concurrent (High Contention)
func Benchmark_GetWinningBid_ConcurrentSharedAuction(b *testing.B) {
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, store)
	ctx := context.Background()

	seedAuction(b, store, "shared_auction_1", 1000)

	for j := 0; j < 100; j++ {
		bidderID := fmt.Sprintf("bidder_%d", j)
		amount := decimal.NewFromInt(1000 + int64(j+1)*100)
		_, _, _ = svc.PlaceBid(ctx, "shared_auction_1", bidderID, amount)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var counter int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetWinningBid(ctx, "shared_auction_1"); err != nil {
				b.Fatalf("failed to get winning bid: %v", err)
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}

// Benchmark 5: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedAuction(b *testing.B) {
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, store)
	ctx := context.Background()

	seedAuction(b, store, "shared_auction_1", 1000)

	for j := 0; j < 50; j++ {
		bidderID := fmt.Sprintf("bidder_seed_%d", j)
		amount := decimal.NewFromInt(1000 + int64(j+1)*100)
		_, _, _ = svc.PlaceBid(ctx, "shared_auction_1", bidderID, amount)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 6000
	var counter int64

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			opType := rnd.Intn(10)
			switch {
			case opType < 3:
				// Writer: place a new bid
				bidderID := fmt.Sprintf("bidder_writer_%d", rnd.Int())
				nextBid := atomic.AddInt64(&lastBid, 100+int64(rnd.Intn(50)))
				_, _, _ = svc.PlaceBid(ctx, "shared_auction_1", bidderID, decimal.NewFromInt(nextBid))
			default:
				// Reader: get winning bid
				_, _ = svc.GetWinningBid(ctx, "shared_auction_1")
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}
