package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audithandler "shopez/internal/audit/handler"
	"shopez/internal/catalog"
	cataloghandler "shopez/internal/catalog/handler"
	"shopez/internal/platform/metrics"
	"shopez/internal/platform/middleware"
	sessionhandler "shopez/internal/session/handler"
)

// Deps carries everything the router needs. main wires it once at startup.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Sessions sessionhandler.Service
	Tokens   interface {
		sessionhandler.TokenIssuer
		middleware.TokenValidator
	}
	Catalog *catalog.Catalog
	Audit   audithandler.Source
}

// NewRouter assembles the full HTTP surface: the storefront session API, the
// public catalog, the audit trail, health, and metrics.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.LatencyMiddleware(deps.Metrics))

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		sessionhandler.New(deps.Sessions, deps.Tokens, deps.Catalog, deps.Logger).
			Register(r, middleware.RequireSession(deps.Tokens, deps.Logger))
		cataloghandler.New(deps.Catalog, deps.Logger).Register(r)
		audithandler.New(deps.Audit, deps.Logger).Register(r)

		r.Get("/healthz", handleHealth)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
