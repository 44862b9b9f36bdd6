package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindow(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewSlidingWindow(2, time.Minute)
	l.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok, "third request inside the window")

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys have separate budgets")

	clock = clock.Add(61 * time.Second)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "window slid past the first requests")
}

func TestSlidingWindow_Sweep(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewSlidingWindow(5, time.Minute)
	l.now = func() time.Time { return clock }

	_, _ = l.Allow(context.Background(), "old")
	clock = clock.Add(45 * time.Second)
	_, _ = l.Allow(context.Background(), "new")
	clock = clock.Add(30 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	assert.Len(t, l.windows, 1)
	assert.Contains(t, l.windows, "new")
}

type mockUpdateItem struct {
	mock.Mock
}

func (m *mockUpdateItem) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.UpdateItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDynamoDBWindow(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		allowed bool
		wantErr bool
	}{
		{name: "under limit", allowed: true},
		{name: "window full", err: &types.ConditionalCheckFailedException{}, allowed: false},
		{name: "storage error fails open", err: errors.New("throttled"), allowed: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockUpdateItem)
			var out *dynamodb.UpdateItemOutput
			if tt.err == nil {
				out = &dynamodb.UpdateItemOutput{}
			}
			client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
				pk := in.Key["PK"].(*types.AttributeValueMemberS).Value
				sk := in.Key["SK"].(*types.AttributeValueMemberS).Value
				limit := in.ExpressionAttributeValues[":limit"].(*types.AttributeValueMemberN).Value
				return *in.TableName == "content-studio" &&
					pk == "RATELIMIT#generate#10.0.0.1" &&
					sk == "WINDOW#1709283600" &&
					limit == "3"
			})).Return(out, tt.err)

			l := NewDynamoDBWindow(client, "content-studio", "generate", 3, time.Minute)
			l.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 30, 0, time.UTC) }

			allowed, err := l.Allow(context.Background(), "10.0.0.1")

			assert.Equal(t, tt.allowed, allowed)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			client.AssertExpectations(t)
		})
	}
}
