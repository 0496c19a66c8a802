package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/propman/backend/internal/infrastructure/logger"
	"github.com/propman/backend/internal/infrastructure/telemetry"
	"github.com/propman/backend/internal/interfaces/http/handler"
	"github.com/propman/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registrar under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one resource under a common prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new resource route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle registers a route for any method
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, handlers...)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, handlers...)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, path, handlers...)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, handlers...)
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the resource handlers mounted by New
type Handlers struct {
	Properties *handler.PropertyHandler
	Tenants    *handler.TenantHandler
	Leases     *handler.LeaseHandler
	Categories *handler.CategoryHandler
	Expenses   *handler.ExpenseHandler
	MoneyFlows *handler.MoneyFlowHandler
	Health     *handler.HealthHandler
}

// Options configures the engine built by New
type Options struct {
	Logger         *zap.Logger
	HTTP           config.HTTPConfig
	ServiceName    string
	Tracing        bool
	Metrics        *telemetry.Metrics // nil disables /metrics
	Idempotency    shared.IdempotencyStore
	IdempotencyTTL time.Duration
}

// New builds the gin engine with the global middleware chain, the health
// probes, /metrics and every resource under /api/v1.
func New(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
			_ = engine.SetTrustedProxies(nil)
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	cors := middleware.DefaultCORSConfig()
	if len(opts.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = opts.HTTP.CORSAllowOrigins
	}
	if len(opts.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = opts.HTTP.CORSAllowMethods
	}
	if len(opts.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = opts.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORS(cors),
	)
	if opts.Tracing {
		engine.Use(middleware.Tracing(opts.ServiceName), middleware.SpanRequestID())
	}
	if opts.Metrics != nil {
		engine.Use(middleware.Metrics(opts.Metrics))
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))

	if h.Health != nil {
		engine.GET("/health", h.Health.Ready)
		engine.GET("/health/live", h.Health.Live)
		engine.GET("/health/ready", h.Health.Ready)
	}

	var commands []gin.HandlerFunc
	if opts.Idempotency != nil {
		commands = append(commands, middleware.Idempotency(opts.Idempotency, opts.IdempotencyTTL))
	}

	r := NewRouter(engine)
	for _, group := range resourceGroups(h) {
		r.Register(group.Use(commands...))
	}
	r.Setup()
	return engine
}

func resourceGroups(h Handlers) []*DomainGroup {
	var groups []*DomainGroup

	if p := h.Properties; p != nil {
		groups = append(groups, NewDomainGroup("properties", "/properties").
			POST("", p.Create).
			GET("", p.List).
			GET("/:id", p.Get).
			PUT("/:id", p.Update).
			DELETE("/:id", p.Archive).
			POST("/:id/activate", p.Activate).
			GET("/:id/summary", p.Summary))
	}
	if t := h.Tenants; t != nil {
		groups = append(groups, NewDomainGroup("tenants", "/tenants").
			POST("", t.Create).
			GET("", t.List).
			GET("/:id", t.Get).
			PUT("/:id", t.Update))
	}
	if l := h.Leases; l != nil {
		groups = append(groups, NewDomainGroup("leases", "/leases").
			POST("", l.Create).
			GET("", l.List).
			GET("/:id", l.Get).
			PUT("/:id", l.Update).
			POST("/:id/terminate", l.Terminate))
	}
	if c := h.Categories; c != nil {
		groups = append(groups, NewDomainGroup("expense-categories", "/expense-categories").
			GET("", c.List).
			GET("/:id", c.Get))
	}
	if e := h.Expenses; e != nil {
		groups = append(groups, NewDomainGroup("expenses", "/expenses").
			POST("", e.Create).
			GET("", e.List).
			GET("/:id", e.Get).
			PUT("/:id", e.Update).
			DELETE("/:id", e.Delete).
			POST("/:id/attachments", e.UploadAttachment).
			GET("/:id/attachments", e.ListAttachments).
			GET("/:id/attachments/:attachmentId", e.DownloadAttachment).
			DELETE("/:id/attachments/:attachmentId", e.DeleteAttachment))
	}
	if m := h.MoneyFlows; m != nil {
		groups = append(groups, NewDomainGroup("moneyflows", "/moneyflows").
			POST("", m.Create).
			GET("", m.List).
			GET("/:id", m.Get).
			PUT("/:id", m.Update).
			DELETE("/:id", m.Delete))
	}
	return groups
}
