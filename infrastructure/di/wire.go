//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/zaheyak/Content-Studio-sub000/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideMetrics,
	ProvideTracer,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideContentRepository,
	ProvideEventPublisher,
	ProvideGenerator,
	ProvideRateLimiter,
	ProvideCache,
	ProvidePersistenceService,
	ProvideGenerationService,
	ProvideSessionManager,
	ProvideExporters,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideConfigWatcher,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
