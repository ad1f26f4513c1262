package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parts-auction/internal/auctionerrors"
	"parts-auction/internal/models"
	"parts-auction/internal/repository"
	"parts-auction/utils"

	"github.com/shopspring/decimal"
)

// maxAdvanceAttempts bounds how often a bid retries the conditional price
// update after losing a race before surfacing ErrBusy.
const maxAdvanceAttempts = 3

// maxAppendAttempts bounds retries of the ledger append. The append is
// additive and safe to retry, so a transient storage failure here does not
// roll back the already-advanced price.
const maxAppendAttempts = 3

// BiddingService validates and atomically applies bids against the auction
// registry, recording accepted bids in the ledger.
type BiddingService struct {
	registry repository.AuctionRegistry
	ledger   repository.BidLedger
	now      func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(registry repository.AuctionRegistry, ledger repository.BidLedger) *BiddingService {
	return &BiddingService{
		registry: registry,
		ledger:   ledger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *BiddingService) WithClock(now func() time.Time) *BiddingService {
	s.now = now
	return s
}

// CreateAuction validates and stores a new auction for a listing. The record
// starts Scheduled, or Active when the window has already opened.
func (s *BiddingService) CreateAuction(ctx context.Context, listingID, sellerID string, startPrice decimal.Decimal, startTime, endTime time.Time) (models.Auction, error) {
	if listingID == "" || sellerID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing listingID or sellerID", auctionerrors.ErrInvalidInput)
	}
	if !startPrice.IsPositive() {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive start price", auctionerrors.ErrInvalidInput)
	}
	if !endTime.After(startTime) {
		return models.Auction{}, fmt.Errorf("service: %w - end time not after start time", auctionerrors.ErrInvalidInput)
	}

	status := models.StatusScheduled
	if !s.now().Before(startTime) {
		status = models.StatusActive
	}

	auction := models.Auction{
		AuctionID:    utils.GenerateID(),
		ListingID:    listingID,
		SellerID:     sellerID,
		StartPrice:   startPrice,
		CurrentPrice: startPrice,
		StartTime:    startTime.UTC(),
		EndTime:      endTime.UTC(),
		Status:       status,
	}

	if err := s.registry.CreateAuction(ctx, auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for listing %s: %w", listingID, err)
	}
	return auction, nil
}

// PlaceBid validates a bid and applies it through the registry's conditional
// price update. The returned snapshot reflects the accepted bid.
//
// A lost race re-reads the fresh snapshot and re-validates before retrying,
// so a bidder overtaken by a higher price gets ErrBidTooLow with the new
// minimum rather than a silent retry loop. Which of two racing bids wins is
// decided by whichever conditional update storage applies first.
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (models.Auction, models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return models.Auction{}, models.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return models.Auction{}, models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	for attempt := 1; ; attempt++ {
		auction, err := s.registry.GetAuction(ctx, auctionID)
		if err != nil {
			return models.Auction{}, models.Bid{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
		}

		if err := s.validateBid(auction, bidderID, amount); err != nil {
			return models.Auction{}, models.Bid{}, err
		}

		updated, err := s.registry.TryAdvancePrice(ctx, auctionID, amount, auction.CurrentPrice)
		if errors.Is(err, auctionerrors.ErrConcurrentModification) {
			if attempt >= maxAdvanceAttempts {
				utils.Warn("bid retries exhausted", map[string]any{
					"auction_id": auctionID,
					"bidder_id":  bidderID,
					"attempts":   attempt,
				})
				return models.Auction{}, models.Bid{}, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrBusy)
			}
			// Another bid landed first; re-read and re-validate.
			continue
		}
		if err != nil {
			return models.Auction{}, models.Bid{}, fmt.Errorf("service: failed to advance price for auction %s: %w", auctionID, err)
		}

		bid := models.Bid{
			BidID:      utils.GenerateID(),
			AuctionID:  auctionID,
			BidderID:   bidderID,
			Amount:     amount,
			AcceptedAt: s.now(),
		}
		if err := s.appendBid(ctx, bid); err != nil {
			// The price ratchet already holds this amount, so later bids
			// must still clear it even though this ledger entry never landed.
			return models.Auction{}, models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by bidder %s: %w", auctionID, bidderID, err)
		}
		return updated, bid, nil
	}
}

// validateBid checks the preconditions in order: active window, seller
// exclusion, minimum increment.
func (s *BiddingService) validateBid(auction models.Auction, bidderID string, amount decimal.Decimal) error {
	if !auction.Biddable(s.now()) {
		return fmt.Errorf("service: auction %s with status %s: %w", auction.AuctionID, auction.Status, auctionerrors.ErrAuctionNotActive)
	}
	if bidderID == auction.SellerID {
		return fmt.Errorf("service: auction %s: %w", auction.AuctionID, auctionerrors.ErrSellerCannotBid)
	}
	if minimum := auction.MinimumNextBid(); amount.LessThan(minimum) {
		return fmt.Errorf("service: auction %s: %w", auction.AuctionID, auctionerrors.NewBidTooLow(minimum))
	}
	return nil
}

func (s *BiddingService) appendBid(ctx context.Context, bid models.Bid) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = s.ledger.AppendBid(ctx, bid); err == nil {
			return nil
		}
		utils.Warn("ledger append failed, retrying", map[string]any{
			"auction_id": bid.AuctionID,
			"bid_id":     bid.BidID,
			"attempt":    attempt,
			"error":      err.Error(),
		})
		if attempt >= maxAppendAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}
}

// GetAuction returns the current snapshot of an auction.
func (s *BiddingService) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	auction, err := s.registry.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// GetBidsForAuction returns all bids for a specific auction, newest first.
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := s.ledger.ListBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetWinningBid returns the highest bid for a specific auction.
func (s *BiddingService) GetWinningBid(ctx context.Context, auctionID string) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	bid, err := s.ledger.HighestBid(ctx, auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}
	return bid, nil
}
