package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	StatusScheduled AuctionStatus = "Scheduled"
	StatusActive    AuctionStatus = "Active"
	StatusClosed    AuctionStatus = "Closed"
	StatusCancelled AuctionStatus = "Cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s AuctionStatus) Terminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// MinimumIncrement is how much a new bid must exceed the current price by.
// Fixed platform-wide.
var MinimumIncrement = decimal.NewFromInt(100)

// Auction is a time-boxed sale for a single listing.
//
// CurrentPrice never decreases; exactly one terminal transition (Closed or
// Cancelled) ever happens; WinnerID, once set, never changes.
type Auction struct {
	AuctionID    string          `json:"auction_id"`
	ListingID    string          `json:"listing_id"`
	SellerID     string          `json:"seller_id"`
	StartPrice   decimal.Decimal `json:"start_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       AuctionStatus   `json:"status"`
	WinnerID     string          `json:"winner_id,omitempty"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
}

// MinimumNextBid returns the smallest amount the next bid may carry.
func (a Auction) MinimumNextBid() decimal.Decimal {
	return a.CurrentPrice.Add(MinimumIncrement)
}

// Biddable reports whether the auction accepts bids at the given instant.
// The time window is authoritative over the stored status: a record the
// sweep has not yet transitioned is still biddable inside its window and
// never biddable outside it.
func (a Auction) Biddable(now time.Time) bool {
	if a.Status.Terminal() {
		return false
	}
	return !now.Before(a.StartTime) && now.Before(a.EndTime)
}

// Bid is an accepted offer on an auction. Bids are append-only and never
// mutated once recorded.
type Bid struct {
	BidID      string          `json:"bid_id"`
	AuctionID  string          `json:"auction_id"`
	BidderID   string          `json:"bidder_id"`
	Amount     decimal.Decimal `json:"amount"`
	AcceptedAt time.Time       `json:"accepted_at"`
}

// AuctionOrder is the order materialized for a won auction. At most one
// order ever exists per (AuctionID, WinnerID) pair.
type AuctionOrder struct {
	OrderID   string          `json:"order_id"`
	AuctionID string          `json:"auction_id"`
	WinnerID  string          `json:"winner_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
