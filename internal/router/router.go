package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/baseline-api/internal/handler"
	"github.com/jwalitptl/baseline-api/internal/middleware"
	"github.com/jwalitptl/baseline-api/pkg/event"
	"github.com/jwalitptl/baseline-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type EventHandler interface {
	Handler
	event.EventHandler
}

type Router struct {
	engine       *gin.Engine
	h            *handler.Handler
	authH        Handler
	dashboardH   Handler
	patientH     EventHandler
	appointmentH EventHandler
	eventTracker *event.EventTracker
	config       RouterConfig
}

type RouterConfig struct {
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	// RateLimit is nil when limiting is disabled.
	RateLimit *middleware.RateLimiterConfig
	// MetricsPath is empty when the scrape endpoint is disabled.
	MetricsPath string
	Metrics     *metrics.Metrics
}

// NewRouter installs the middleware chain. A nil eventTracker registers the
// data routes without change events.
func NewRouter(
	h *handler.Handler,
	authH Handler,
	patientH EventHandler,
	appointmentH EventHandler,
	dashboardH Handler,
	eventTracker *event.EventTracker,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		h:            h,
		authH:        authH,
		dashboardH:   dashboardH,
		patientH:     patientH,
		appointmentH: appointmentH,
		eventTracker: eventTracker,
		config:       config,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(config.Metrics),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit != nil {
		engine.Use(middleware.NewRateLimiter(*config.RateLimit).RateLimit())
	}

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if config.MaxBodyBytes > 0 {
		sizeLimit.MaxBodySize = config.MaxBodyBytes
	}
	engine.Use(middleware.SizeLimit(sizeLimit))

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", r.h.HealthCheck)
	if r.config.MetricsPath != "" {
		r.engine.GET(r.config.MetricsPath, r.h.MetricsHandler())
	}

	api := r.engine.Group("/api")
	r.authH.RegisterRoutes(api)
	r.setupDataRoutes(api)
	r.dashboardH.RegisterRoutes(api)

	r.engine.NoRoute(r.h.NotFound)
}

func (r *Router) setupDataRoutes(rg *gin.RouterGroup) {
	for _, dh := range []EventHandler{r.patientH, r.appointmentH} {
		if r.eventTracker == nil {
			dh.RegisterRoutes(rg)
			continue
		}
		dh.RegisterRoutesWithEvents(rg, r.eventTracker)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
