package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

type echoQuery struct {
	Value string
}

func (q echoQuery) Validate() error {
	if q.Value == "" {
		return errors.New("value is required")
	}
	return nil
}

type otherQuery struct{}

func (otherQuery) Validate() error { return nil }

func TestQueryBus_Ask(t *testing.T) {
	metrics := observability.NewNopCollector()
	b := NewQueryBus()
	handler := NewMetricsMiddleware(metrics, zap.NewNop()).Wrap(QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return q.(echoQuery).Value, nil
	}))
	require.NoError(t, b.Register(echoQuery{}, handler))
	assert.Error(t, b.Register(echoQuery{}, handler), "a type registers once")

	got, err := b.Ask(context.Background(), echoQuery{Value: "map"})
	require.NoError(t, err)
	assert.Equal(t, "map", got)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DBOperations.WithLabelValues("echoQuery", "query", "success")))

	_, err = b.Ask(context.Background(), echoQuery{})
	assert.EqualError(t, err, "value is required")

	_, err = b.Ask(context.Background(), otherQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}
