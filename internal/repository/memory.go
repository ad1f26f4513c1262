package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"parts-auction/internal/auctionerrors"
	model "parts-auction/internal/models"
	"parts-auction/utils"

	"github.com/shopspring/decimal"
)

// MemoryStore is a concurrency-safe in-memory implementation of
// AuctionRegistry, BidLedger and OrderStore. The conditional checks run
// under the same lock as the write, which gives the same compare-and-set
// semantics the DynamoDB backend gets from condition expressions.
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction        // key: auctionID
	bids     map[string][]model.Bid          // key: auctionID -> accepted bids, append order
	orders   map[string]model.AuctionOrder   // key: auctionID + "/" + winnerID
}

var (
	_ AuctionRegistry = (*MemoryStore)(nil)
	_ BidLedger       = (*MemoryStore)(nil)
	_ OrderStore      = (*MemoryStore)(nil)
)

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
		orders:   make(map[string]model.AuctionOrder),
	}
}

func orderKey(auctionID, winnerID string) string {
	return auctionID + "/" + winnerID
}

// snapshot returns a defensive copy; ClosedAt is the only pointer field.
func snapshot(a model.Auction) model.Auction {
	if a.ClosedAt != nil {
		at := *a.ClosedAt
		a.ClosedAt = &at
	}
	return a
}

// CreateAuction stores a new auction record, rejecting duplicate ids.
func (s *MemoryStore) CreateAuction(_ context.Context, auction model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, auctionerrors.ErrAuctionExists)
	}
	s.auctions[auction.AuctionID] = snapshot(auction)
	return nil
}

// GetAuction returns the current snapshot of an auction.
func (s *MemoryStore) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return snapshot(a), nil
}

// TryAdvancePrice performs the conditional price ratchet.
func (s *MemoryStore) TryAdvancePrice(_ context.Context, auctionID string, newPrice, expectedPrice decimal.Decimal) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("advance price for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status.Terminal() {
		return model.Auction{}, fmt.Errorf("advance price for auction %s with status %s: %w",
			auctionID, a.Status, auctionerrors.ErrConcurrentModification)
	}
	if !a.CurrentPrice.Equal(expectedPrice) {
		return model.Auction{}, fmt.Errorf("advance price for auction %s: expected %s, stored %s: %w",
			auctionID, expectedPrice.String(), a.CurrentPrice.String(), auctionerrors.ErrConcurrentModification)
	}
	a.CurrentPrice = newPrice
	s.auctions[auctionID] = a
	return snapshot(a), nil
}

// TryTransition performs the conditional status transition.
func (s *MemoryStore) TryTransition(_ context.Context, auctionID string, from, to model.AuctionStatus, at time.Time) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("transition auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != from {
		return model.Auction{}, fmt.Errorf("transition auction %s from %s to %s, stored status %s: %w",
			auctionID, from, to, a.Status, auctionerrors.ErrInvalidTransition)
	}
	a.Status = to
	if to.Terminal() && a.ClosedAt == nil {
		closedAt := at.UTC()
		a.ClosedAt = &closedAt
	}
	s.auctions[auctionID] = a
	return snapshot(a), nil
}

// SetWinner records the winner on a closed auction, at most once.
func (s *MemoryStore) SetWinner(_ context.Context, auctionID, winnerID string) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("set winner for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != model.StatusClosed || a.WinnerID != "" {
		return model.Auction{}, fmt.Errorf("set winner for auction %s with status %s: %w",
			auctionID, a.Status, auctionerrors.ErrInvalidTransition)
	}
	a.WinnerID = winnerID
	s.auctions[auctionID] = a
	return snapshot(a), nil
}

// ListExpired returns active auctions whose window has ended.
func (s *MemoryStore) ListExpired(_ context.Context, now time.Time) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []model.Auction
	for _, a := range s.auctions {
		if a.Status == model.StatusActive && !a.EndTime.After(now) {
			expired = append(expired, snapshot(a))
		}
	}
	return expired, nil
}

// ListDueToStart returns scheduled auctions whose window has opened.
func (s *MemoryStore) ListDueToStart(_ context.Context, now time.Time) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []model.Auction
	for _, a := range s.auctions {
		if a.Status == model.StatusScheduled && !a.StartTime.After(now) {
			due = append(due, snapshot(a))
		}
	}
	return due, nil
}

// AppendBid records an accepted bid. Content was validated upstream.
func (s *MemoryStore) AppendBid(_ context.Context, bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], bid)
	return nil
}

// HighestBid returns the highest bid for an auction, earliest accepted on
// equal amounts. Equal amounts should be unreachable given the price
// ratchet, so an observed tie is logged as a likely conditional-update bug.
func (s *MemoryStore) HighestBid(_ context.Context, auctionID string) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.bids[auctionID]
	if len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("highest bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount.Equal(winning.Amount) {
			utils.Warn("ledger holds bids with equal amounts, ratchet should prevent this", map[string]any{
				"auction_id": auctionID,
				"amount":     b.Amount.String(),
			})
		}
		if b.Amount.GreaterThan(winning.Amount) || (b.Amount.Equal(winning.Amount) && b.AcceptedAt.Before(winning.AcceptedAt)) {
			winning = b
		}
	}
	return winning, nil
}

// ListBidsByAuction returns all bids for an auction, newest first.
func (s *MemoryStore) ListBidsByAuction(_ context.Context, auctionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := append([]model.Bid(nil), s.bids[auctionID]...)
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].AcceptedAt.After(bids[j].AcceptedAt)
	})
	return bids, nil
}

// CreateOrder persists an order, enforcing (auction, winner) uniqueness.
func (s *MemoryStore) CreateOrder(_ context.Context, order model.AuctionOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := orderKey(order.AuctionID, order.WinnerID)
	if _, ok := s.orders[key]; ok {
		return fmt.Errorf("create order for auction %s, winner %s: %w",
			order.AuctionID, order.WinnerID, auctionerrors.ErrDuplicateOrder)
	}
	s.orders[key] = order
	return nil
}

// FindOrderByAuctionAndUser returns the order for an auction/user pair.
func (s *MemoryStore) FindOrderByAuctionAndUser(_ context.Context, auctionID, userID string) (model.AuctionOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderKey(auctionID, userID)]
	if !ok {
		return model.AuctionOrder{}, fmt.Errorf("find order for auction %s, user %s: %w",
			auctionID, userID, auctionerrors.ErrOrderNotFound)
	}
	return order, nil
}
