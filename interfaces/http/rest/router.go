package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	querybus "github.com/zaheyak/Content-Studio-sub000/application/queries/bus"
	"github.com/zaheyak/Content-Studio-sub000/interfaces/http/rest/handlers"
	"github.com/zaheyak/Content-Studio-sub000/interfaces/http/rest/middleware"
	"github.com/zaheyak/Content-Studio-sub000/pkg/common"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
	"github.com/zaheyak/Content-Studio-sub000/pkg/ratelimit"
)

// Options tune the router per deployment
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	EnableMetrics  bool
	MaxBodyBytes   int64
	Debug          bool

	// GenerateLimiter throttles generation per client when set
	GenerateLimiter ratelimit.Limiter
}

// SessionCounter reports the number of open editors for readiness checks
type SessionCounter interface {
	Count() int
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	sessions   SessionCounter
	metrics    *observability.Collector
	tracer     *observability.Tracer
	opts       Options
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	sessions SessionCounter,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	opts Options,
	logger *zap.Logger,
) *Router {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = common.DefaultMaxBodyBytes
	}
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		sessions:   sessions,
		metrics:    metrics,
		tracer:     tracer,
		opts:       opts,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()
	errHandler := pkgerrors.NewErrorHandler(rt.logger, rt.opts.Debug)

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.tracer.Middleware)
	router.Use(middleware.Logger(rt.logger, rt.metrics))
	router.Use(errHandler.Middleware)

	if rt.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.opts.EnableMetrics && rt.metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	mindmaps := handlers.NewMindMapHandler(rt.commandBus, rt.queryBus, errHandler, rt.opts.MaxBodyBytes, rt.logger)
	sessions := handlers.NewSessionHandler(rt.commandBus, rt.queryBus, errHandler, rt.opts.MaxBodyBytes, rt.logger)

	throttle := func(next http.Handler) http.Handler { return next }
	if rt.opts.GenerateLimiter != nil {
		throttle = middleware.RateLimit(rt.opts.GenerateLimiter, errHandler, rt.logger)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/lessons/{lessonID}", func(r chi.Router) {
			r.Get("/formats", mindmaps.ListFormats)
			r.Route("/mindmap", func(r chi.Router) {
				r.Get("/", mindmaps.GetMindMap)
				r.Put("/", mindmaps.SaveMindMap)
				r.With(throttle).Post("/generate", mindmaps.Generate)
				r.Get("/export", mindmaps.Export)
			})
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.Open)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", sessions.Get)
				r.Delete("/", sessions.Close)
				r.Post("/input", sessions.ApplyInput)
				r.Get("/render", sessions.Render)
				r.Get("/export", sessions.Export)
				r.With(throttle).Post("/generate", sessions.Generate)
				r.Post("/save", sessions.Save)
				r.Post("/save/retry", sessions.RetrySave)
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports ready while the session manager accepts editors
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	open := 0
	if rt.sessions != nil {
		open = rt.sessions.Count()
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"sessions": open,
	})
}
