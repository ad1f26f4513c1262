package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"parts-auction/internal/auctionerrors"
	model "parts-auction/internal/models"
	"parts-auction/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultBidsTableName = "auction_bids"

type bidItem struct {
	AuctionID  string `dynamodbav:"auction_id"`
	BidID      string `dynamodbav:"bid_id"`
	BidderID   string `dynamodbav:"bidder_id"`
	Amount     string `dynamodbav:"amount"`
	AcceptedAt string `dynamodbav:"accepted_at"`
}

// DynamoBidLedger persists accepted bids in DynamoDB.
//
// Table requirements:
//   - PK: auction_id (string)
//   - SK: bid_id (string)
//
// The ledger is append-only; items are never updated or deleted.
type DynamoBidLedger struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ BidLedger = (*DynamoBidLedger)(nil)

func NewDynamoBidLedger(ddb *dynamodb.Client) *DynamoBidLedger {
	return &DynamoBidLedger{
		ddb:       ddb,
		tableName: getenvDefault("BIDS_TABLE", defaultBidsTableName),
	}
}

func (l *DynamoBidLedger) AppendBid(ctx context.Context, bid model.Bid) error {
	av, err := attributevalue.MarshalMap(toBidItem(bid))
	if err != nil {
		return err
	}

	// A retried append of the same bid id overwrites an identical item,
	// which keeps the append safe to retry after a timeout.
	_, err = l.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.tableName),
		Item:      av,
	})
	return err
}

func (l *DynamoBidLedger) HighestBid(ctx context.Context, auctionID string) (model.Bid, error) {
	bids, err := l.queryBids(ctx, auctionID)
	if err != nil {
		return model.Bid{}, err
	}
	if len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("highest bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount.Equal(winning.Amount) {
			utils.Warn("ledger holds bids with equal amounts, ratchet should prevent this", map[string]any{
				"auction_id": auctionID,
				"amount":     b.Amount.String(),
			})
		}
		if b.Amount.GreaterThan(winning.Amount) || (b.Amount.Equal(winning.Amount) && b.AcceptedAt.Before(winning.AcceptedAt)) {
			winning = b
		}
	}
	return winning, nil
}

func (l *DynamoBidLedger) ListBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	bids, err := l.queryBids(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].AcceptedAt.After(bids[j].AcceptedAt)
	})
	return bids, nil
}

func (l *DynamoBidLedger) queryBids(ctx context.Context, auctionID string) ([]model.Bid, error) {
	var bids []model.Bid
	var startKey map[string]types.AttributeValue

	for {
		out, err := l.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(l.tableName),
			KeyConditionExpression: aws.String("auction_id = :aid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":aid": &types.AttributeValueMemberS{Value: auctionID},
			},
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it bidItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			b, err := fromBidItem(it)
			if err != nil {
				return nil, err
			}
			bids = append(bids, b)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return bids, nil
}

func toBidItem(b model.Bid) bidItem {
	return bidItem{
		AuctionID:  b.AuctionID,
		BidID:      b.BidID,
		BidderID:   b.BidderID,
		Amount:     b.Amount.String(),
		AcceptedAt: b.AcceptedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromBidItem(it bidItem) (model.Bid, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return model.Bid{}, fmt.Errorf("bid %s: invalid stored amount %q: %w", it.BidID, it.Amount, err)
	}
	acceptedAt, err := time.Parse(time.RFC3339Nano, it.AcceptedAt)
	if err != nil {
		return model.Bid{}, fmt.Errorf("bid %s: invalid stored accepted_at %q: %w", it.BidID, it.AcceptedAt, err)
	}
	return model.Bid{
		BidID:      it.BidID,
		AuctionID:  it.AuctionID,
		BidderID:   it.BidderID,
		Amount:     amount,
		AcceptedAt: acceptedAt,
	}, nil
}
