package repository

import (
	"context"
	"fmt"
	"time"

	"parts-auction/internal/auctionerrors"
	model "parts-auction/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultOrdersTableName = "auction_orders"

type orderItem struct {
	ID        string `dynamodbav:"id"`
	OrderID   string `dynamodbav:"order_id"`
	AuctionID string `dynamodbav:"auction_id"`
	WinnerID  string `dynamodbav:"winner_id"`
	Amount    string `dynamodbav:"amount"`
	CreatedAt string `dynamodbav:"created_at"`
}

// DynamoOrderStore persists auction orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string), "<auction_id>/<winner_id>"
//
// Keying on the pair makes the uniqueness constraint a property of the
// table: the conditional put fails on the second create no matter how the
// callers race.
type DynamoOrderStore struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ OrderStore = (*DynamoOrderStore)(nil)

func NewDynamoOrderStore(ddb *dynamodb.Client) *DynamoOrderStore {
	return &DynamoOrderStore{
		ddb:       ddb,
		tableName: getenvDefault("AUCTION_ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (s *DynamoOrderStore) CreateOrder(ctx context.Context, order model.AuctionOrder) error {
	it := toOrderItem(order)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("create order for auction %s, winner %s: %w",
			order.AuctionID, order.WinnerID, auctionerrors.ErrDuplicateOrder)
	}
	return err
}

func (s *DynamoOrderStore) FindOrderByAuctionAndUser(ctx context.Context, auctionID, userID string) (model.AuctionOrder, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderKey(auctionID, userID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return model.AuctionOrder{}, err
	}
	if len(out.Item) == 0 {
		return model.AuctionOrder{}, fmt.Errorf("find order for auction %s, user %s: %w",
			auctionID, userID, auctionerrors.ErrOrderNotFound)
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return model.AuctionOrder{}, err
	}
	return fromOrderItem(it)
}

func toOrderItem(o model.AuctionOrder) orderItem {
	return orderItem{
		ID:        orderKey(o.AuctionID, o.WinnerID),
		OrderID:   o.OrderID,
		AuctionID: o.AuctionID,
		WinnerID:  o.WinnerID,
		Amount:    o.Amount.String(),
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromOrderItem(it orderItem) (model.AuctionOrder, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return model.AuctionOrder{}, fmt.Errorf("order %s: invalid stored amount %q: %w", it.OrderID, it.Amount, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return model.AuctionOrder{}, fmt.Errorf("order %s: invalid stored created_at %q: %w", it.OrderID, it.CreatedAt, err)
	}
	return model.AuctionOrder{
		OrderID:   it.OrderID,
		AuctionID: it.AuctionID,
		WinnerID:  it.WinnerID,
		Amount:    amount,
		CreatedAt: createdAt,
	}, nil
}
