package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	bidding "parts-auction/internal/biddingService"
	"parts-auction/internal/closer"
	model "parts-auction/internal/models"
	"parts-auction/internal/orders"
	"parts-auction/internal/repository"
	"parts-auction/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// SetupTestRouter wires the full stack against the in-memory store and a fixed clock.
func SetupTestRouter(t *testing.T, auctions ...model.Auction) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	for _, a := range auctions {
		if err := store.CreateAuction(context.Background(), a); err != nil {
			t.Fatalf("failed to seed auction: %v", err)
		}
	}

	service := bidding.NewBiddingService(store, store).WithClock(fixedClock)
	materializer := orders.NewMaterializer(store).WithClock(fixedClock)
	auctionCloser := closer.NewAuctionCloser(store, store, materializer).WithClock(fixedClock)
	router := server.SetupRouter(service, auctionCloser)
	return router, store
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// ActiveAuction returns a bid-ready auction whose window straddles the fixed clock.
func ActiveAuction(id string, currentPrice int64) model.Auction {
	return model.Auction{
		AuctionID:    id,
		ListingID:    "listing-" + id,
		SellerID:     "seller1",
		StartPrice:   decimal.NewFromInt(1000),
		CurrentPrice: decimal.NewFromInt(currentPrice),
		StartTime:    testNow.Add(-time.Hour),
		EndTime:      testNow.Add(time.Hour),
		Status:       model.StatusActive,
	}
}
