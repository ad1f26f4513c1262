package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"parts-auction/internal/auctionerrors"
	"parts-auction/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrAuctionExists):
		return http.StatusConflict, "auction already exists"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not accepting bids"
	case errors.Is(err, auctionerrors.ErrSellerCannotBid):
		return http.StatusForbidden, "seller cannot bid on own auction"
	case errors.Is(err, auctionerrors.ErrNotSeller):
		return http.StatusForbidden, "only the seller may do this"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAlreadyClosed):
		return http.StatusConflict, "auction already closed"
	case errors.Is(err, auctionerrors.ErrAlreadyCancelled):
		return http.StatusConflict, "auction already cancelled"
	case errors.Is(err, auctionerrors.ErrBusy):
		return http.StatusServiceUnavailable, "auction busy, retry later"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes the mapped error response. A BidTooLow rejection
// additionally carries the minimum acceptable amount so the client can
// retry with a valid value straight away.
func RespondError(c *gin.Context, err error, message string) {
	status, mapped := MapErrorToHTTP(err)
	if message == "" {
		message = mapped
	}

	var tooLow *auctionerrors.BidTooLowError
	if errors.As(err, &tooLow) {
		utils.JSONErrorWithData(c, status, err, message, gin.H{
			"minimum_next_bid": tooLow.Minimum.String(),
		})
		return
	}
	utils.JSONError(c, status, err, message)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
