package helpers

import (
	"time"

	model "parts-auction/internal/models"

	"github.com/shopspring/decimal"
)

// Request DTOs
type CreateAuctionRequest struct {
	ListingID  string          `json:"listing_id" binding:"required"`
	SellerID   string          `json:"seller_id" binding:"required"`
	StartPrice decimal.Decimal `json:"start_price" binding:"required"`
	StartTime  time.Time       `json:"start_time" binding:"required"`
	EndTime    time.Time       `json:"end_time" binding:"required"`
}

type PlaceBidRequest struct {
	BidderID string          `json:"bidder_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

type CloseAuctionRequest struct {
	CallerID string `json:"caller_id" binding:"required"`
}

// Response DTOs
type AuctionResponse struct {
	AuctionID    string `json:"auction_id"`
	ListingID    string `json:"listing_id"`
	SellerID     string `json:"seller_id"`
	StartPrice   string `json:"start_price"`
	CurrentPrice string `json:"current_price"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	WinnerID     string `json:"winner_id,omitempty"`
	ClosedAt     string `json:"closed_at,omitempty"`
}

type BidResponse struct {
	BidID      string `json:"bid_id"`
	AuctionID  string `json:"auction_id"`
	BidderID   string `json:"bidder_id"`
	Amount     string `json:"amount"`
	AcceptedAt string `json:"accepted_at"`
}

type PlaceBidResponse struct {
	Bid     BidResponse     `json:"bid"`
	Auction AuctionResponse `json:"auction"`
}

// NewAuctionResponse converts an auction snapshot into its wire shape.
func NewAuctionResponse(a model.Auction) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:    a.AuctionID,
		ListingID:    a.ListingID,
		SellerID:     a.SellerID,
		StartPrice:   a.StartPrice.String(),
		CurrentPrice: a.CurrentPrice.String(),
		StartTime:    a.StartTime.UTC().Format(time.RFC3339),
		EndTime:      a.EndTime.UTC().Format(time.RFC3339),
		Status:       string(a.Status),
		WinnerID:     a.WinnerID,
	}
	if a.ClosedAt != nil {
		resp.ClosedAt = a.ClosedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// NewBidResponse converts a bid into its wire shape.
func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:      b.BidID,
		AuctionID:  b.AuctionID,
		BidderID:   b.BidderID,
		Amount:     b.Amount.String(),
		AcceptedAt: b.AcceptedAt.UTC().Format(time.RFC3339),
	}
}
