package di

import (
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	querybus "github.com/zaheyak/Content-Studio-sub000/application/queries/bus"
	"github.com/zaheyak/Content-Studio-sub000/application/services"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/config"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
	"github.com/zaheyak/Content-Studio-sub000/pkg/ratelimit"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Metrics       *observability.Collector
	Tracer        *observability.Tracer
	Cache         *TTLCache
	Sessions      *services.SessionManager
	Generation    *services.GenerationService
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	ConfigWatcher *config.Watcher
	RateLimiter   ratelimit.Limiter
}

// Close releases background resources. In-flight saves finish first.
func (c *Container) Close() {
	if c.ConfigWatcher != nil {
		c.ConfigWatcher.Stop()
	}
	if c.Sessions != nil {
		c.Sessions.Shutdown()
	}
	if c.Cache != nil {
		c.Cache.Stop()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
