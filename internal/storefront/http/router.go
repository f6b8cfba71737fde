package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

var (
	anyRole   = domain.Roles(domain.RoleUser, domain.RoleAdmin)
	adminOnly = domain.Roles(domain.RoleAdmin)
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	metrics      *metrics.Metrics

	SessionService *service.SessionService
	UserService    *service.UserService
	ProductService *service.ProductService
	CartService    *service.CartService

	Cookie CookieConfig

	// CredentialLimit guards login and sign-up per client IP.
	CredentialLimit httpx.RateLimitConfig
	// ProbeLimit guards the health endpoints per client IP.
	ProbeLimit httpx.RateLimitConfig
}

func NewRouter(buildVersion string, st store.Store, m *metrics.Metrics, logger *slog.Logger) *Router {
	r := &Router{
		Mux:             http.NewServeMux(),
		buildVersion:    buildVersion,
		startTime:       time.Now(),
		logger:          logger,
		store:           st,
		metrics:         m,
		Cookie:          CookieConfig{Name: "jwt"},
		CredentialLimit: httpx.StrictLimit,
		ProbeLimit:      httpx.LenientLimit,
	}

	// Request logging outermost. The metrics middleware has to wrap the mux
	// directly to see the matched route pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		m.HTTPMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerProducts()
	r.registerCarts()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return AuthnMiddleware(r.SessionService, r.Cookie.Name, r.metrics)
}

// secured wraps h with authentication followed by the role gate.
func (r *Router) secured(h http.HandlerFunc, allowed domain.RoleSet) http.Handler {
	return httpx.Chain(h,
		r.authn(),
		RequireRole(allowed, r.metrics),
	)
}

func (r *Router) registerSessions() {
	h := &SessionHandler{
		SessionService: r.SessionService,
		UserService:    r.UserService,
		Metrics:        r.metrics,
		Cookie:         r.Cookie,
	}

	// Credential endpoints share one strict per-IP limiter.
	credentialLimit := httpx.RateLimitByIP(r.CredentialLimit)

	r.Mux.Handle("POST /api/sessions/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin), credentialLimit),
	)
	r.Mux.Handle("POST /api/sessions/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister), credentialLimit),
	)
	r.Mux.Handle("GET /api/sessions/current",
		httpx.Chain(http.HandlerFunc(h.HandleCurrent), r.authn()),
	)
	r.Mux.HandleFunc("POST /api/sessions/logout", h.HandleLogout)
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{ProductService: r.ProductService}

	r.Mux.Handle("GET /api/products", r.secured(h.HandleList, anyRole))
	r.Mux.Handle("GET /api/products/{id}", r.secured(h.HandleGet, anyRole))
	r.Mux.Handle("POST /api/products", r.secured(h.HandleCreate, adminOnly))
	r.Mux.Handle("DELETE /api/products/{id}", r.secured(h.HandleDelete, adminOnly))
}

func (r *Router) registerCarts() {
	h := &CartsHandler{CartService: r.CartService}

	r.Mux.Handle("POST /api/carts", r.secured(h.HandleCreate, anyRole))
	r.Mux.Handle("GET /api/carts/{cid}", r.secured(h.HandleGet, anyRole))
	r.Mux.Handle("PUT /api/carts/{cid}", r.secured(h.HandleReplace, anyRole))
	r.Mux.Handle("POST /api/carts/{cid}/products/{pid}", r.secured(h.HandleAddProduct, anyRole))
	r.Mux.Handle("DELETE /api/carts/{cid}/products/{pid}", r.secured(h.HandleRemoveProduct, anyRole))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users", r.secured(h.HandleList, adminOnly))
	r.Mux.Handle("POST /api/users", r.secured(h.HandleCreate, adminOnly))
	r.Mux.Handle("GET /api/users/{id}", r.secured(h.HandleGet, adminOnly))
	r.Mux.Handle("PUT /api/users/{id}", r.secured(h.HandleUpdate, adminOnly))
	r.Mux.Handle("PUT /api/users/{id}/role", r.secured(h.HandleUpdateRole, adminOnly))
	r.Mux.Handle("DELETE /api/users/{id}", r.secured(h.HandleDelete, adminOnly))
}

func (r *Router) registerSystem() {
	probeLimit := httpx.RateLimitByIP(r.ProbeLimit)

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), probeLimit),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), probeLimit),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
