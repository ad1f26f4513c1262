package auctionerrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Repository-level errors
var (
	ErrAuctionNotFound        = errors.New("auction not found")
	ErrAuctionExists          = errors.New("auction already exists")
	ErrNoBids                 = errors.New("no bids found for auction")
	ErrConcurrentModification = errors.New("auction modified concurrently")
	ErrInvalidTransition      = errors.New("invalid auction status transition")
	ErrDuplicateOrder         = errors.New("order already exists for auction and winner")
	ErrOrderNotFound          = errors.New("order not found")
)

// business logic errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrAuctionNotActive = errors.New("auction is not active")
	ErrSellerCannotBid  = errors.New("seller cannot bid on own auction")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrBusy             = errors.New("auction busy, retry later")
	ErrNotSeller        = errors.New("caller is not the auction seller")
	ErrAlreadyClosed    = errors.New("auction already closed")
	ErrAlreadyCancelled = errors.New("auction already cancelled")
)

// BidTooLowError carries the minimum acceptable amount so a rejected client
// can retry with a valid value immediately.
type BidTooLowError struct {
	Minimum decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%v: minimum acceptable bid is %s", ErrBidTooLow, e.Minimum.String())
}

func (e *BidTooLowError) Unwrap() error { return ErrBidTooLow }

// NewBidTooLow builds a BidTooLowError for the given minimum.
func NewBidTooLow(minimum decimal.Decimal) error {
	return &BidTooLowError{Minimum: minimum}
}
