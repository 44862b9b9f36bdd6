package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/domain/events"
)

// LogPublisher writes events to the log instead of a bus. It stands in for
// EventBridge when no bus is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Info("Event published",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Int64("version", event.GetVersion()),
	)
	return nil
}

func (p *LogPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
