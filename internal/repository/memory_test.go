package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"parts-auction/internal/auctionerrors"
	model "parts-auction/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Helper to create a new Auction
func newAuction(auctionID, sellerID string, price int64, status model.AuctionStatus, start, end time.Time) model.Auction {
	p := decimal.NewFromInt(price)
	return model.Auction{
		AuctionID:    auctionID,
		ListingID:    fmt.Sprintf("listing-%s", auctionID),
		SellerID:     sellerID,
		StartPrice:   p,
		CurrentPrice: p,
		StartTime:    start,
		EndTime:      end,
		Status:       status,
	}
}

// Helper to create a new Bid
func newBid(bidID, auctionID, bidderID string, amount int64, acceptedAt time.Time) model.Bid {
	return model.Bid{
		BidID:      bidID,
		AuctionID:  auctionID,
		BidderID:   bidderID,
		Amount:     decimal.NewFromInt(amount),
		AcceptedAt: acceptedAt,
	}
}

func TestMemoryStore_CreateAndGetAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now().UTC()

	auction := newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, store.CreateAuction(ctx, auction))

	t.Run("duplicate_id_rejected", func(t *testing.T) {
		err := store.CreateAuction(ctx, auction)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionExists)
	})

	t.Run("get_returns_snapshot", func(t *testing.T) {
		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, "a1", got.AuctionID)
		require.True(t, got.CurrentPrice.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("unknown_id", func(t *testing.T) {
		_, err := store.GetAuction(ctx, "missing")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})
}

func TestMemoryStore_TryAdvancePrice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("advances_on_matching_expectation", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))))

		updated, err := store.TryAdvancePrice(ctx, "a1", decimal.NewFromInt(1100), decimal.NewFromInt(1000))
		require.NoError(t, err)
		require.True(t, updated.CurrentPrice.Equal(decimal.NewFromInt(1100)))
	})

	t.Run("rejects_on_stale_expectation", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))))

		_, err := store.TryAdvancePrice(ctx, "a1", decimal.NewFromInt(1100), decimal.NewFromInt(1000))
		require.NoError(t, err)

		_, err = store.TryAdvancePrice(ctx, "a1", decimal.NewFromInt(1200), decimal.NewFromInt(1000))
		require.ErrorIs(t, err, auctionerrors.ErrConcurrentModification)

		// Price unchanged by the failed attempt
		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.True(t, got.CurrentPrice.Equal(decimal.NewFromInt(1100)))
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		_, err := store.TryAdvancePrice(ctx, "missing", decimal.NewFromInt(1100), decimal.NewFromInt(1000))
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("rejects_after_terminal_transition", func(t *testing.T) {
		t.Parallel()

		// A bid that read an Active snapshot must not advance the price
		// once a close landed, even though the expected price still matches.
		store := NewMemoryStore()
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))))

		_, err := store.TryTransition(ctx, "a1", model.StatusActive, model.StatusClosed, now)
		require.NoError(t, err)

		_, err = store.TryAdvancePrice(ctx, "a1", decimal.NewFromInt(1100), decimal.NewFromInt(1000))
		require.ErrorIs(t, err, auctionerrors.ErrConcurrentModification)

		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, model.StatusClosed, got.Status)
		require.True(t, got.CurrentPrice.Equal(decimal.NewFromInt(1000)))
	})

	// concurrency test: many writers observing the same expected price,
	// exactly one conditional update may apply
	t.Run("concurrent_single_winner", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))))

		var wg sync.WaitGroup
		concurrentCount := 50
		successes := make(chan struct{}, concurrentCount)

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				_, err := store.TryAdvancePrice(ctx, "a1", decimal.NewFromInt(int64(1100+i)), decimal.NewFromInt(1000))
				if err == nil {
					successes <- struct{}{}
				} else {
					require.ErrorIs(t, err, auctionerrors.ErrConcurrentModification)
				}
			}()
		}

		wg.Wait()
		close(successes)
		require.Len(t, successes, 1)
	})
}

func TestMemoryStore_TryTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("active_to_closed_stamps_closed_at", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour))))

		closed, err := store.TryTransition(ctx, "a1", model.StatusActive, model.StatusClosed, now)
		require.NoError(t, err)
		require.Equal(t, model.StatusClosed, closed.Status)
		require.NotNil(t, closed.ClosedAt)
		require.WithinDuration(t, now, *closed.ClosedAt, time.Second)
	})

	t.Run("mismatched_from_rejected", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusScheduled, now.Add(time.Hour), now.Add(2*time.Hour))))

		_, err := store.TryTransition(ctx, "a1", model.StatusActive, model.StatusClosed, now)
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)
	})

	// concurrency test: two racing terminal transitions, at most one applies
	t.Run("concurrent_single_terminal_transition", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour))))

		var wg sync.WaitGroup
		successes := make(chan model.AuctionStatus, 2)
		for _, target := range []model.AuctionStatus{model.StatusClosed, model.StatusCancelled} {
			wg.Add(1)
			target := target
			go func() {
				defer wg.Done()
				if _, err := store.TryTransition(ctx, "a1", model.StatusActive, target, now); err == nil {
					successes <- target
				}
			}()
		}

		wg.Wait()
		close(successes)
		require.Len(t, successes, 1)

		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.True(t, got.Status.Terminal())
	})
}

func TestMemoryStore_SetWinner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	store := NewMemoryStore()
	require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "seller1", 1000, model.StatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour))))
	require.NoError(t, store.CreateAuction(ctx, newAuction("a2", "seller1", 1000, model.StatusActive, now.Add(-2*time.Hour), now.Add(time.Hour))))

	_, err := store.TryTransition(ctx, "a1", model.StatusActive, model.StatusClosed, now)
	require.NoError(t, err)

	t.Run("sets_winner_on_closed_auction", func(t *testing.T) {
		got, err := store.SetWinner(ctx, "a1", "bidder1")
		require.NoError(t, err)
		require.Equal(t, "bidder1", got.WinnerID)
	})

	t.Run("winner_never_changes", func(t *testing.T) {
		_, err := store.SetWinner(ctx, "a1", "bidder2")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)

		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, "bidder1", got.WinnerID)
	})

	t.Run("rejected_on_open_auction", func(t *testing.T) {
		_, err := store.SetWinner(ctx, "a2", "bidder1")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)
	})
}

func TestMemoryStore_ListExpiredAndDue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	store := NewMemoryStore()
	require.NoError(t, store.CreateAuction(ctx, newAuction("expired", "s", 100, model.StatusActive, now.Add(-2*time.Hour), now.Add(-time.Minute))))
	require.NoError(t, store.CreateAuction(ctx, newAuction("running", "s", 100, model.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))))
	require.NoError(t, store.CreateAuction(ctx, newAuction("due", "s", 100, model.StatusScheduled, now.Add(-time.Minute), now.Add(time.Hour))))
	require.NoError(t, store.CreateAuction(ctx, newAuction("future", "s", 100, model.StatusScheduled, now.Add(time.Hour), now.Add(2*time.Hour))))
	require.NoError(t, store.CreateAuction(ctx, newAuction("done", "s", 100, model.StatusClosed, now.Add(-2*time.Hour), now.Add(-time.Hour))))

	expired, err := store.ListExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, "expired", expired[0].AuctionID)

	due, err := store.ListDueToStart(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "due", due[0].AuctionID)
}

func TestMemoryStore_BidLedger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("highest_bid_max_amount", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.AppendBid(ctx, newBid("b1", "a1", "u1", 1100, now)))
		require.NoError(t, store.AppendBid(ctx, newBid("b2", "a1", "u2", 1300, now.Add(time.Second))))
		require.NoError(t, store.AppendBid(ctx, newBid("b3", "a1", "u3", 1200, now.Add(2*time.Second))))

		winning, err := store.HighestBid(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, "b2", winning.BidID)
	})

	t.Run("tie_breaks_to_earliest", func(t *testing.T) {
		t.Parallel()

		// Equal amounts cannot happen through the ratchet; the ledger
		// still resolves them deterministically if they ever appear.
		store := NewMemoryStore()
		require.NoError(t, store.AppendBid(ctx, newBid("b1", "a1", "u1", 1100, now.Add(time.Second))))
		require.NoError(t, store.AppendBid(ctx, newBid("b2", "a1", "u2", 1100, now)))

		winning, err := store.HighestBid(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, "b2", winning.BidID)
	})

	t.Run("no_bids", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		_, err := store.HighestBid(ctx, "empty")
		require.ErrorIs(t, err, auctionerrors.ErrNoBids)
	})

	t.Run("list_newest_first", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.AppendBid(ctx, newBid("b1", "a1", "u1", 1100, now)))
		require.NoError(t, store.AppendBid(ctx, newBid("b2", "a1", "u2", 1200, now.Add(time.Second))))
		require.NoError(t, store.AppendBid(ctx, newBid("b3", "a1", "u3", 1300, now.Add(2*time.Second))))

		bids, err := store.ListBidsByAuction(ctx, "a1")
		require.NoError(t, err)
		require.Len(t, bids, 3)
		require.Equal(t, "b3", bids[0].BidID)
		require.Equal(t, "b1", bids[2].BidID)
	})

	// concurrency test
	t.Run("concurrent_appends", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		var wg sync.WaitGroup
		concurrentCount := 50

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				b := newBid(fmt.Sprintf("bid-%d", i), "a1", fmt.Sprintf("user-%d", i), int64(1000+i), time.Now())
				require.NoError(t, store.AppendBid(ctx, b))
			}()
		}

		wg.Wait()
		bids, err := store.ListBidsByAuction(ctx, "a1")
		require.NoError(t, err)
		require.Len(t, bids, concurrentCount)
	})
}

func TestMemoryStore_Orders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("duplicate_pair_rejected", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		order := model.AuctionOrder{OrderID: "o1", AuctionID: "a1", WinnerID: "u1", Amount: decimal.NewFromInt(1500), CreatedAt: now}
		require.NoError(t, store.CreateOrder(ctx, order))

		dup := order
		dup.OrderID = "o2"
		err := store.CreateOrder(ctx, dup)
		require.ErrorIs(t, err, auctionerrors.ErrDuplicateOrder)

		found, err := store.FindOrderByAuctionAndUser(ctx, "a1", "u1")
		require.NoError(t, err)
		require.Equal(t, "o1", found.OrderID)
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		_, err := store.FindOrderByAuctionAndUser(ctx, "a1", "u1")
		require.ErrorIs(t, err, auctionerrors.ErrOrderNotFound)
	})

	// concurrency test: exactly one create wins for the same pair
	t.Run("concurrent_creates_single_order", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		var wg sync.WaitGroup
		var mu sync.Mutex
		created := 0

		for i := 0; i < 20; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				order := model.AuctionOrder{
					OrderID:   fmt.Sprintf("o-%d", i),
					AuctionID: "a1",
					WinnerID:  "u1",
					Amount:    decimal.NewFromInt(1500),
					CreatedAt: time.Now(),
				}
				if err := store.CreateOrder(ctx, order); err == nil {
					mu.Lock()
					created++
					mu.Unlock()
				} else {
					require.ErrorIs(t, err, auctionerrors.ErrDuplicateOrder)
				}
			}()
		}

		wg.Wait()
		require.Equal(t, 1, created)
	})
}
