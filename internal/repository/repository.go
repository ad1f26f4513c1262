package repository

import (
	"context"
	"time"

	model "parts-auction/internal/models"

	"github.com/shopspring/decimal"
)

// AuctionRegistry is the durable store of auction records. All price and
// status mutations go through the conditional Try* methods; there is no
// unconditional write path, so a stale read can never overwrite a newer
// record.
type AuctionRegistry interface {
	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)

	// TryAdvancePrice raises CurrentPrice to newPrice only if the stored
	// price still equals expectedPrice and the stored status is not
	// terminal. Returns the updated snapshot, or ErrConcurrentModification
	// when another writer (a rival bid or a close) got there first.
	TryAdvancePrice(ctx context.Context, auctionID string, newPrice, expectedPrice decimal.Decimal) (model.Auction, error)

	// TryTransition moves Status from one state to another only if the
	// stored status still equals from. Terminal targets stamp ClosedAt
	// with at. Returns ErrInvalidTransition when the stored status differs.
	TryTransition(ctx context.Context, auctionID string, from, to model.AuctionStatus, at time.Time) (model.Auction, error)

	// SetWinner records the winning bidder on a closed auction. Succeeds at
	// most once per auction; ErrInvalidTransition if the auction is not
	// Closed or already has a winner.
	SetWinner(ctx context.Context, auctionID, winnerID string) (model.Auction, error)

	// ListExpired returns active auctions whose EndTime has passed.
	ListExpired(ctx context.Context, now time.Time) ([]model.Auction, error)

	// ListDueToStart returns scheduled auctions whose StartTime has passed.
	ListDueToStart(ctx context.Context, now time.Time) ([]model.Auction, error)
}

// BidLedger is the append-only record of accepted bids. Validation happens
// upstream in the bidding service; the ledger never rejects on content.
type BidLedger interface {
	AppendBid(ctx context.Context, bid model.Bid) error

	// HighestBid returns the bid with the maximum amount for the auction,
	// ties broken by earliest AcceptedAt. ErrNoBids when the ledger holds
	// none.
	HighestBid(ctx context.Context, auctionID string) (model.Bid, error)

	// ListBidsByAuction returns all bids for the auction, newest first.
	ListBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
}

// OrderStore is the boundary to the external order collaborator. Uniqueness
// of (AuctionID, WinnerID) is enforced at the storage layer, not by a prior
// existence check.
type OrderStore interface {
	// CreateOrder persists the order, returning ErrDuplicateOrder when one
	// already exists for the same auction and winner.
	CreateOrder(ctx context.Context, order model.AuctionOrder) error

	FindOrderByAuctionAndUser(ctx context.Context, auctionID, userID string) (model.AuctionOrder, error)
}
