package closer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parts-auction/internal/auctionerrors"
	"parts-auction/internal/models"
	"parts-auction/internal/orders"
	"parts-auction/internal/repository"
	"parts-auction/utils"
)

// AuctionCloser resolves auctions to a terminal state: manual close by the
// seller, the periodic expiry sweep, and seller cancellation. Whichever
// caller wins the conditional Active->Closed transition resolves the winner
// and materializes the order; everyone else observes an idempotent no-op.
type AuctionCloser struct {
	registry     repository.AuctionRegistry
	ledger       repository.BidLedger
	materializer *orders.Materializer
	now          func() time.Time
}

// NewAuctionCloser creates a new AuctionCloser instance
func NewAuctionCloser(registry repository.AuctionRegistry, ledger repository.BidLedger, materializer *orders.Materializer) *AuctionCloser {
	return &AuctionCloser{
		registry:     registry,
		ledger:       ledger,
		materializer: materializer,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the closer clock. Intended for tests.
func (c *AuctionCloser) WithClock(now func() time.Time) *AuctionCloser {
	c.now = now
	return c
}

// CloseManually closes an auction on the seller's request.
func (c *AuctionCloser) CloseManually(ctx context.Context, auctionID, callerID string) (models.Auction, error) {
	if auctionID == "" || callerID == "" {
		return models.Auction{}, fmt.Errorf("closer: %w - missing auctionID or callerID", auctionerrors.ErrInvalidInput)
	}

	auction, err := c.registry.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("closer: failed to load auction %s: %w", auctionID, err)
	}
	if callerID != auction.SellerID {
		return models.Auction{}, fmt.Errorf("closer: auction %s: %w", auctionID, auctionerrors.ErrNotSeller)
	}

	return c.close(ctx, auctionID)
}

// Cancel moves a Scheduled or Active auction to Cancelled on the seller's
// request. No winner is ever resolved for a cancelled auction.
func (c *AuctionCloser) Cancel(ctx context.Context, auctionID, callerID string) (models.Auction, error) {
	if auctionID == "" || callerID == "" {
		return models.Auction{}, fmt.Errorf("closer: %w - missing auctionID or callerID", auctionerrors.ErrInvalidInput)
	}

	auction, err := c.registry.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("closer: failed to load auction %s: %w", auctionID, err)
	}
	if callerID != auction.SellerID {
		return models.Auction{}, fmt.Errorf("closer: auction %s: %w", auctionID, auctionerrors.ErrNotSeller)
	}

	for _, from := range []models.AuctionStatus{models.StatusActive, models.StatusScheduled} {
		cancelled, err := c.registry.TryTransition(ctx, auctionID, from, models.StatusCancelled, c.now())
		if err == nil {
			utils.Info("auction cancelled", map[string]any{"auction_id": auctionID, "caller_id": callerID})
			return cancelled, nil
		}
		if !errors.Is(err, auctionerrors.ErrInvalidTransition) {
			return models.Auction{}, fmt.Errorf("closer: failed to cancel auction %s: %w", auctionID, err)
		}
	}

	// Neither transition applied; resolve against the stored state.
	fresh, err := c.registry.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("closer: failed to re-load auction %s: %w", auctionID, err)
	}
	switch fresh.Status {
	case models.StatusCancelled:
		// Already cancelled, idempotent success.
		return fresh, nil
	case models.StatusClosed:
		return models.Auction{}, fmt.Errorf("closer: auction %s: %w", auctionID, auctionerrors.ErrAlreadyClosed)
	default:
		return models.Auction{}, fmt.Errorf("closer: auction %s in status %s: %w", auctionID, fresh.Status, auctionerrors.ErrInvalidTransition)
	}
}

// SweepExpired activates due auctions and closes every expired one. An error
// on one auction never blocks the rest; failures are logged and skipped.
func (c *AuctionCloser) SweepExpired(ctx context.Context) ([]models.Auction, error) {
	now := c.now()

	c.activateDue(ctx, now)

	expired, err := c.registry.ListExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("closer: failed to list expired auctions: %w", err)
	}

	closed := make([]models.Auction, 0, len(expired))
	for _, auction := range expired {
		a, err := c.close(ctx, auction.AuctionID)
		if err != nil {
			utils.Error("sweep failed to close auction", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
			continue
		}
		closed = append(closed, a)
	}
	return closed, nil
}

// activateDue promotes Scheduled auctions whose window has opened. Bidding
// does not depend on this (the time window is authoritative), it only keeps
// stored statuses honest.
func (c *AuctionCloser) activateDue(ctx context.Context, now time.Time) {
	due, err := c.registry.ListDueToStart(ctx, now)
	if err != nil {
		utils.Error("sweep failed to list due auctions", map[string]any{"error": err.Error()})
		return
	}
	for _, auction := range due {
		_, err := c.registry.TryTransition(ctx, auction.AuctionID, models.StatusScheduled, models.StatusActive, now)
		if err != nil && !errors.Is(err, auctionerrors.ErrInvalidTransition) {
			utils.Error("sweep failed to activate auction", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
		}
	}
}

// close is the shared core for manual close and the sweep. Only the caller
// whose transition applies resolves the winner; a lost race against an
// already-closed auction returns the stored snapshot unchanged.
func (c *AuctionCloser) close(ctx context.Context, auctionID string) (models.Auction, error) {
	closed, err := c.registry.TryTransition(ctx, auctionID, models.StatusActive, models.StatusClosed, c.now())
	if errors.Is(err, auctionerrors.ErrInvalidTransition) {
		fresh, freshErr := c.registry.GetAuction(ctx, auctionID)
		if freshErr != nil {
			return models.Auction{}, fmt.Errorf("closer: failed to re-load auction %s: %w", auctionID, freshErr)
		}
		switch fresh.Status {
		case models.StatusClosed:
			// Someone else already closed it, idempotent success.
			return fresh, nil
		case models.StatusCancelled:
			return models.Auction{}, fmt.Errorf("closer: auction %s: %w", auctionID, auctionerrors.ErrAlreadyCancelled)
		default:
			return models.Auction{}, fmt.Errorf("closer: auction %s in status %s: %w", auctionID, fresh.Status, auctionerrors.ErrAuctionNotActive)
		}
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("closer: failed to close auction %s: %w", auctionID, err)
	}

	return c.resolveWinner(ctx, closed)
}

// resolveWinner reads the highest accepted bid, records the winner on the
// closed record and materializes the order. Runs once per auction: only the
// close call that won the transition reaches here.
func (c *AuctionCloser) resolveWinner(ctx context.Context, closed models.Auction) (models.Auction, error) {
	highest, err := c.ledger.HighestBid(ctx, closed.AuctionID)
	if errors.Is(err, auctionerrors.ErrNoBids) {
		utils.Info("auction closed with no bids", map[string]any{"auction_id": closed.AuctionID})
		return closed, nil
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("closer: failed to read highest bid for auction %s: %w", closed.AuctionID, err)
	}

	withWinner, err := c.registry.SetWinner(ctx, closed.AuctionID, highest.BidderID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("closer: failed to set winner for auction %s: %w", closed.AuctionID, err)
	}

	order, err := c.materializer.CreateOrderForWin(ctx, closed.AuctionID, highest.BidderID, highest.Amount)
	if err != nil {
		return models.Auction{}, fmt.Errorf("closer: failed to materialize order for auction %s: %w", closed.AuctionID, err)
	}

	utils.Info("auction closed with winner", map[string]any{
		"auction_id": closed.AuctionID,
		"winner_id":  highest.BidderID,
		"amount":     highest.Amount.String(),
		"order_id":   order.OrderID,
	})
	return withWinner, nil
}
