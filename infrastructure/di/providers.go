package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	commandhandlers "github.com/zaheyak/Content-Studio-sub000/application/commands/handlers"
	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	querybus "github.com/zaheyak/Content-Studio-sub000/application/queries/bus"
	queryhandlers "github.com/zaheyak/Content-Studio-sub000/application/queries/handlers"
	"github.com/zaheyak/Content-Studio-sub000/application/services"
	domainconfig "github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/config"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/export"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/generation"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/messaging"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/persistence/dynamodb"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/persistence/memory"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
	"github.com/zaheyak/Content-Studio-sub000/pkg/ratelimit"
)

const serviceName = "content-studio-mindmap"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideDomainConfig picks the editor tunables for the environment and
// applies the operational overrides from the service config
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	dcfg := domainconfig.LoadDomainConfig(cfg.Environment)
	dcfg.GenerationTimeout = cfg.GeneratorTimeout
	dcfg.MaxSessions = cfg.MaxSessions
	dcfg.SessionIdleTimeout = cfg.SessionIdleTimeout
	if err := dcfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid editor configuration: %w", err)
	}
	return dcfg, nil
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("content_studio")
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration, instrumented for X-Ray when
// tracing is on
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideContentRepository selects the storage backend
func ProvideContentRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) ports.ContentRepository {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("Using in-memory content storage, data is lost on restart")
		return memory.NewContentRepository(logger)
	}
	return dynamodb.NewContentRepository(client, cfg.DynamoDBTable, metrics, logger)
}

// ProvideEventPublisher publishes to EventBridge, or to the log when no bus
// is configured
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		logger.Info("No event bus configured, completion events are logged only")
		return messaging.NewLogPublisher(logger)
	}
	return messaging.NewEventBridgePublisher(client, cfg.EventBusName, cfg.EventSource, logger)
}

// ProvideGenerator creates the external generator client. Without a URL every
// generation uses the local keyword fallback.
func ProvideGenerator(cfg *config.Config, logger *zap.Logger) ports.Generator {
	if cfg.GeneratorURL == "" {
		logger.Info("No generator configured, using keyword extraction only")
		return nil
	}
	client := &http.Client{}
	if cfg.EnableTracing {
		client = xray.Client(client)
	}
	return generation.NewHTTPGenerator(cfg.GeneratorURL, client, logger)
}

// ProvideRateLimiter budgets generation requests per client. The memory
// backend counts in process; dynamodb shares counters across instances.
func ProvideRateLimiter(client *awsdynamodb.Client, cfg *config.Config) ratelimit.Limiter {
	if cfg.GenerateRateLimit == 0 {
		return nil
	}
	if cfg.StorageBackend == config.StorageMemory {
		return ratelimit.NewSlidingWindow(cfg.GenerateRateLimit, time.Minute)
	}
	return ratelimit.NewDynamoDBWindow(client, cfg.DynamoDBTable, "generate", cfg.GenerateRateLimit, time.Minute)
}

// ProvideCache creates the stored mind map cache
func ProvideCache(cfg *config.Config) *TTLCache {
	return NewTTLCache(cfg.SessionSweepInterval)
}

// ProvidePersistenceService creates the persistence service
func ProvidePersistenceService(
	repo ports.ContentRepository,
	publisher ports.EventPublisher,
	cache *TTLCache,
	dcfg *domainconfig.DomainConfig,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *services.PersistenceService {
	return services.NewPersistenceService(repo, publisher, cache, dcfg, metrics, tracer, logger)
}

// ProvideGenerationService creates the generation service
func ProvideGenerationService(
	generator ports.Generator,
	dcfg *domainconfig.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.GenerationService {
	return services.NewGenerationService(generator, dcfg, metrics, logger)
}

// ProvideSessionManager creates the editor session manager
func ProvideSessionManager(
	dcfg *domainconfig.DomainConfig,
	persistence *services.PersistenceService,
	generationService *services.GenerationService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.SessionManager {
	return services.NewSessionManager(dcfg, persistence, generationService, metrics, logger)
}

// ProvideExporters lists the snapshot formats
func ProvideExporters() []ports.SnapshotRenderer {
	return []ports.SnapshotRenderer{export.NewSVGRenderer(), export.NewPNGRenderer()}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	sessions *services.SessionManager,
	persistence *services.PersistenceService,
	generationService *services.GenerationService,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.RecoveryMiddleware(logger),
		bus.LoggingMiddleware(logger),
	)

	if err := commandhandlers.NewSessionCommandHandler(sessions).Register(commandBus); err != nil {
		return nil, err
	}
	if err := commandhandlers.NewMindMapCommandHandler(persistence, generationService, logger).Register(commandBus); err != nil {
		return nil, err
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	dcfg *domainconfig.DomainConfig,
	persistence *services.PersistenceService,
	sessions *services.SessionManager,
	exporters []ports.SnapshotRenderer,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	handler := queryhandlers.NewMindMapQueryHandler(dcfg, persistence, sessions, exporters, logger)
	if err := handler.Register(queryBus, querybus.NewMetricsMiddleware(metrics, logger).Wrap); err != nil {
		return nil, err
	}
	return queryBus, nil
}

// ProvideConfigWatcher reloads the config file and pushes the generator
// timeout into the running generation service
func ProvideConfigWatcher(
	cfg *config.Config,
	generationService *services.GenerationService,
	logger *zap.Logger,
) (*config.Watcher, error) {
	watcher, err := config.NewWatcher(cfg, logger)
	if err != nil {
		return nil, err
	}
	watcher.OnChange(func(next *config.Config) {
		if next.GeneratorTimeout != generationService.Timeout() {
			generationService.SetTimeout(next.GeneratorTimeout)
			logger.Info("Generator timeout updated", zap.Duration("timeout", next.GeneratorTimeout))
		}
	})
	return watcher, nil
}
