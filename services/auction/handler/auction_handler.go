package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parts-auction/internal/auctionerrors"
	model "parts-auction/internal/models"
	"parts-auction/services/auction/helpers"
	"parts-auction/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BiddingServiceInterface interface {
	CreateAuction(ctx context.Context, listingID, sellerID string, startPrice decimal.Decimal, startTime, endTime time.Time) (model.Auction, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (model.Auction, model.Bid, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	GetBidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	GetWinningBid(ctx context.Context, auctionID string) (model.Bid, error)
}

type AuctionCloserInterface interface {
	CloseManually(ctx context.Context, auctionID, callerID string) (model.Auction, error)
	Cancel(ctx context.Context, auctionID, callerID string) (model.Auction, error)
}

type AuctionHandler struct {
	service BiddingServiceInterface
	closer  AuctionCloserInterface
}

func NewAuctionHandler(service BiddingServiceInterface, closer AuctionCloserInterface) *AuctionHandler {
	return &AuctionHandler{service: service, closer: closer}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.service.CreateAuction(c.Request.Context(), req.ListingID, req.SellerID, req.StartPrice, req.StartTime, req.EndTime)
	if err != nil {
		helpers.RespondError(c, err, "")
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"listing_id": req.ListingID,
			"seller_id":  req.SellerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(auction), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"listing_id": auction.ListingID,
		"seller_id":  auction.SellerID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondError(c, err, "")
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auction, bid, err := h.service.PlaceBid(c.Request.Context(), auctionID, req.BidderID, req.Amount)
	if err != nil {
		helpers.RespondError(c, err, "")
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"auction_id": auctionID,
			"bidder_id":  req.BidderID,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		Bid:     helpers.NewBidResponse(bid),
		Auction: helpers.NewAuctionResponse(auction),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted successfully", map[string]any{
		"bid_id":        bid.BidID,
		"auction_id":    auctionID,
		"bidder_id":     req.BidderID,
		"amount":        bid.Amount.String(),
		"current_price": auction.CurrentPrice.String(),
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		helpers.RespondError(c, err, "")
		utils.Warn("GetBidsByAuctionHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /auctions/:auction_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bid, err := h.service.GetWinningBid(c.Request.Context(), auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"auction_id": auctionID})
			return
		}
		helpers.RespondError(c, err, "")
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
}

// CloseAuctionHandler handles POST /auctions/:auction_id/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.CloseAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CloseAuctionHandler", err)
		return
	}

	auction, err := h.closer.CloseManually(c.Request.Context(), auctionID, req.CallerID)
	if err != nil {
		helpers.RespondError(c, err, "")
		utils.Error("CloseAuctionHandler: failed to close auction", map[string]any{
			"auction_id": auctionID,
			"caller_id":  req.CallerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction closed successfully")
	helpers.LogSuccess("CloseAuctionHandler", "auction closed successfully", map[string]any{
		"auction_id": auctionID,
		"winner_id":  auction.WinnerID,
	})
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.CloseAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CancelAuctionHandler", err)
		return
	}

	auction, err := h.closer.Cancel(c.Request.Context(), auctionID, req.CallerID)
	if err != nil {
		helpers.RespondError(c, err, "")
		utils.Error("CancelAuctionHandler: failed to cancel auction", map[string]any{
			"auction_id": auctionID,
			"caller_id":  req.CallerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{
		"auction_id": auctionID,
	})
}
