package orders

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

// Materializer creates the order for a won auction exactly once. It leans on
// the order store's uniqueness constraint rather than a prior existence
// check, so concurrent invocations cannot both create.
type Materializer struct {
	store repository.OrderStore
	now   func() time.Time
}

// NewMaterializer creates a new Materializer instance
func NewMaterializer(store repository.OrderStore) *Materializer {
	return &Materializer{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the materializer clock. Intended for tests.
func (m *Materializer) WithClock(now func() time.Time) *Materializer {
	m.now = now
	return m
}

// CreateOrderForWin persists the order for the auction winner. Repeated
// calls for the same (auction, winner) pair return the already-persisted
// order; the duplicate conflict never reaches the caller.
func (m *Materializer) CreateOrderForWin(ctx context.Context, auctionID, winnerID string, amount decimal.Decimal) (models.AuctionOrder, error) {
	if auctionID == "" || winnerID == "" {
		return models.AuctionOrder{}, fmt.Errorf("orders: %w - missing auctionID or winnerID", auctionerrors.ErrInvalidInput)
	}

	order := models.AuctionOrder{
		OrderID:   utils.GenerateID(),
		AuctionID: auctionID,
		WinnerID:  winnerID,
		Amount:    amount,
		CreatedAt: m.now(),
	}

	err := m.store.CreateOrder(ctx, order)
	if errors.Is(err, auctionerrors.ErrDuplicateOrder) {
		existing, findErr := m.store.FindOrderByAuctionAndUser(ctx, auctionID, winnerID)
		if findErr != nil {
			return models.AuctionOrder{}, fmt.Errorf("orders: failed to fetch existing order for auction %s: %w", auctionID, findErr)
		}
		utils.Info("order already materialized, returning existing", map[string]any{
			"auction_id": auctionID,
			"winner_id":  winnerID,
			"order_id":   existing.OrderID,
		})
		return existing, nil
	}
	if err != nil {
		return models.AuctionOrder{}, fmt.Errorf("orders: failed to create order for auction %s: %w", auctionID, err)
	}
	return order, nil
}
