package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"parts-auction/internal/auctionerrors"
	model "parts-auction/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultAuctionsTableName = "auctions"
	auctionsStatusIndex      = "status-index"
)

// auctionItem is the DynamoDB shape of an auction. Prices are decimal
// strings; the window bounds are epoch seconds so the status-index filter
// can compare them numerically.
type auctionItem struct {
	AuctionID    string `dynamodbav:"auction_id"`
	ListingID    string `dynamodbav:"listing_id"`
	SellerID     string `dynamodbav:"seller_id"`
	StartPrice   string `dynamodbav:"start_price"`
	CurrentPrice string `dynamodbav:"current_price"`
	StartTime    int64  `dynamodbav:"start_time"`
	EndTime      int64  `dynamodbav:"end_time"`
	Status       string `dynamodbav:"status"`
	WinnerID     string `dynamodbav:"winner_id,omitempty"`
	ClosedAt     string `dynamodbav:"closed_at,omitempty"`
}

// DynamoAuctionRegistry persists Auction records in DynamoDB.
//
// Table requirements:
//   - PK: auction_id (string)
//   - GSI: status-index (PK: status)
//
// All mutations use condition expressions, so the compare-and-set semantics
// of the registry hold without any application-level locking.
type DynamoAuctionRegistry struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ AuctionRegistry = (*DynamoAuctionRegistry)(nil)

func NewDynamoAuctionRegistry(ddb *dynamodb.Client) *DynamoAuctionRegistry {
	return &DynamoAuctionRegistry{
		ddb:       ddb,
		tableName: getenvDefault("AUCTIONS_TABLE", defaultAuctionsTableName),
	}
}

func (r *DynamoAuctionRegistry) CreateAuction(ctx context.Context, auction model.Auction) error {
	av, err := attributevalue.MarshalMap(toAuctionItem(auction))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "auction_id",
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, auctionerrors.ErrAuctionExists)
	}
	return err
}

func (r *DynamoAuctionRegistry) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"auction_id": &types.AttributeValueMemberS{Value: auctionID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return model.Auction{}, err
	}
	if len(out.Item) == 0 {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	var it auctionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return model.Auction{}, err
	}
	return fromAuctionItem(it)
}

func (r *DynamoAuctionRegistry) TryAdvancePrice(ctx context.Context, auctionID string, newPrice, expectedPrice decimal.Decimal) (model.Auction, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"auction_id": &types.AttributeValueMemberS{Value: auctionID},
		},
		UpdateExpression:    aws.String("SET #price = :new"),
		ConditionExpression: aws.String("attribute_exists(#id) AND #price = :expected AND #status IN (:scheduled, :active)"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "auction_id",
			"#price":  "current_price",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new":       &types.AttributeValueMemberS{Value: newPrice.String()},
			":expected":  &types.AttributeValueMemberS{Value: expectedPrice.String()},
			":scheduled": &types.AttributeValueMemberS{Value: string(model.StatusScheduled)},
			":active":    &types.AttributeValueMemberS{Value: string(model.StatusActive)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return model.Auction{}, fmt.Errorf("advance price for auction %s: expected %s: %w",
			auctionID, expectedPrice.String(), auctionerrors.ErrConcurrentModification)
	}
	if err != nil {
		return model.Auction{}, err
	}
	return unmarshalAuction(out.Attributes)
}

func (r *DynamoAuctionRegistry) TryTransition(ctx context.Context, auctionID string, from, to model.AuctionStatus, at time.Time) (model.Auction, error) {
	expr := "SET #status = :to"
	vals := map[string]types.AttributeValue{
		":to":   &types.AttributeValueMemberS{Value: string(to)},
		":from": &types.AttributeValueMemberS{Value: string(from)},
	}
	if to.Terminal() {
		expr += ", #closed_at = :closed_at"
		vals[":closed_at"] = &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339Nano)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"auction_id": &types.AttributeValueMemberS{Value: auctionID},
		},
		UpdateExpression:    aws.String(expr),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#id":        "auction_id",
			"#status":    "status",
			"#closed_at": "closed_at",
		},
		ExpressionAttributeValues: vals,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return model.Auction{}, fmt.Errorf("transition auction %s from %s to %s: %w",
			auctionID, from, to, auctionerrors.ErrInvalidTransition)
	}
	if err != nil {
		return model.Auction{}, err
	}
	return unmarshalAuction(out.Attributes)
}

func (r *DynamoAuctionRegistry) SetWinner(ctx context.Context, auctionID, winnerID string) (model.Auction, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"auction_id": &types.AttributeValueMemberS{Value: auctionID},
		},
		UpdateExpression:    aws.String("SET #winner = :winner"),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :closed AND attribute_not_exists(#winner)"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "auction_id",
			"#status": "status",
			"#winner": "winner_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":winner": &types.AttributeValueMemberS{Value: winnerID},
			":closed": &types.AttributeValueMemberS{Value: string(model.StatusClosed)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return model.Auction{}, fmt.Errorf("set winner for auction %s: %w", auctionID, auctionerrors.ErrInvalidTransition)
	}
	if err != nil {
		return model.Auction{}, err
	}
	return unmarshalAuction(out.Attributes)
}

func (r *DynamoAuctionRegistry) ListExpired(ctx context.Context, now time.Time) ([]model.Auction, error) {
	return r.queryByStatus(ctx, model.StatusActive, "end_time <= :bound", now.Unix())
}

func (r *DynamoAuctionRegistry) ListDueToStart(ctx context.Context, now time.Time) ([]model.Auction, error) {
	return r.queryByStatus(ctx, model.StatusScheduled, "start_time <= :bound", now.Unix())
}

func (r *DynamoAuctionRegistry) queryByStatus(ctx context.Context, status model.AuctionStatus, filter string, bound int64) ([]model.Auction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(auctionsStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		FilterExpression:       aws.String(filter),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
			":bound":  &types.AttributeValueMemberN{Value: strconv.FormatInt(bound, 10)},
		},
	})
	if err != nil {
		return nil, err
	}

	auctions := make([]model.Auction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it auctionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		a, err := fromAuctionItem(it)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	return auctions, nil
}

func unmarshalAuction(raw map[string]types.AttributeValue) (model.Auction, error) {
	var it auctionItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return model.Auction{}, err
	}
	return fromAuctionItem(it)
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func toAuctionItem(a model.Auction) auctionItem {
	it := auctionItem{
		AuctionID:    a.AuctionID,
		ListingID:    a.ListingID,
		SellerID:     a.SellerID,
		StartPrice:   a.StartPrice.String(),
		CurrentPrice: a.CurrentPrice.String(),
		StartTime:    a.StartTime.Unix(),
		EndTime:      a.EndTime.Unix(),
		Status:       string(a.Status),
		WinnerID:     a.WinnerID,
	}
	if a.ClosedAt != nil {
		it.ClosedAt = a.ClosedAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

// fromAuctionItem rejects records it cannot parse rather than defaulting:
// a corrupted stored price read back as zero would let the ratchet accept
// bids far below the real price.
func fromAuctionItem(it auctionItem) (model.Auction, error) {
	startPrice, err := decimal.NewFromString(it.StartPrice)
	if err != nil {
		return model.Auction{}, fmt.Errorf("auction %s: invalid stored start_price %q: %w", it.AuctionID, it.StartPrice, err)
	}
	currentPrice, err := decimal.NewFromString(it.CurrentPrice)
	if err != nil {
		return model.Auction{}, fmt.Errorf("auction %s: invalid stored current_price %q: %w", it.AuctionID, it.CurrentPrice, err)
	}
	a := model.Auction{
		AuctionID:    it.AuctionID,
		ListingID:    it.ListingID,
		SellerID:     it.SellerID,
		StartPrice:   startPrice,
		CurrentPrice: currentPrice,
		StartTime:    time.Unix(it.StartTime, 0).UTC(),
		EndTime:      time.Unix(it.EndTime, 0).UTC(),
		Status:       model.AuctionStatus(it.Status),
		WinnerID:     it.WinnerID,
	}
	if it.ClosedAt != "" {
		closedAt, err := time.Parse(time.RFC3339Nano, it.ClosedAt)
		if err != nil {
			return model.Auction{}, fmt.Errorf("auction %s: invalid stored closed_at %q: %w", it.AuctionID, it.ClosedAt, err)
		}
		a.ClosedAt = &closedAt
	}
	return a, nil
}
