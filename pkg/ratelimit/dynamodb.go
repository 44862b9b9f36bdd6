package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UpdateItemAPI is the part of the DynamoDB client the limiter needs
type UpdateItemAPI interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoDBWindow counts requests per fixed window in the content table so
// the budget holds across Lambda instances. Counters expire through the
// table's TTL attribute.
type DynamoDBWindow struct {
	client    UpdateItemAPI
	tableName string
	scope     string
	limit     int
	window    time.Duration
	now       func() time.Time
}

// NewDynamoDBWindow creates a limiter; scope separates budgets sharing a table
func NewDynamoDBWindow(client UpdateItemAPI, tableName, scope string, limit int, window time.Duration) *DynamoDBWindow {
	return &DynamoDBWindow{
		client:    client,
		tableName: tableName,
		scope:     scope,
		limit:     limit,
		window:    window,
		now:       time.Now,
	}
}

// Allow increments the key's counter unless the window is already full.
// Storage errors fail open and are returned alongside true.
func (l *DynamoDBWindow) Allow(ctx context.Context, key string) (bool, error) {
	start := l.now().Truncate(l.window)
	end := start.Add(l.window)

	_, err := l.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(l.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("RATELIMIT#%s#%s", l.scope, key)},
			"SK": &types.AttributeValueMemberS{Value: "WINDOW#" + strconv.FormatInt(start.Unix(), 10)},
		},
		UpdateExpression:    aws.String("SET #count = if_not_exists(#count, :zero) + :one, #ttl = :ttl"),
		ConditionExpression: aws.String("attribute_not_exists(#count) OR #count < :limit"),
		ExpressionAttributeNames: map[string]string{
			"#count": "Count",
			"#ttl":   "TTL",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero":  &types.AttributeValueMemberN{Value: "0"},
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":limit": &types.AttributeValueMemberN{Value: strconv.Itoa(l.limit)},
			":ttl":   &types.AttributeValueMemberN{Value: strconv.FormatInt(end.Add(time.Hour).Unix(), 10)},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return false, nil
		}
		return true, fmt.Errorf("rate limiter failing open: %w", err)
	}
	return true, nil
}

// Window returns the window size
func (l *DynamoDBWindow) Window() time.Duration {
	return l.window
}
