package http

import (
	"context"
	"net/http"

	"catalogstats/internal/analysis"
	"catalogstats/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const StaticPrefix = "/static/"

type RouterConfig struct {
	StaticDir      string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
}

// NewRouter wires every endpoint and the middleware chain. ctx bounds the
// rate limiter's background cleanup.
func NewRouter(ctx context.Context, svc *analysis.Service, cfg RouterConfig) http.Handler {
	h := NewHandler(svc, StaticPrefix)
	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).
		TrustProxies(cfg.TrustedProxies...)

	r := chi.NewRouter()
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.RecoveryMiddleware)
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware)
	r.Use(httpx.CORSMiddleware(cfg.CORSOrigins))

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Route("/v1", func(r chi.Router) {
			r.Get("/overview", h.Overview)
			r.Get("/titles", h.Titles)
			r.Get("/years", h.Years)

			r.Route("/charts", func(r chi.Router) {
				r.Get("/image", h.Image)
				for _, name := range []analysis.ChartName{
					analysis.ChartGenres,
					analysis.ChartRatings,
					analysis.ChartTrend,
					analysis.ChartByYear,
					analysis.ChartByCountry,
					analysis.ChartByType,
				} {
					r.Get("/"+string(name), h.Chart(name))
				}
			})
		})

		fs := http.StripPrefix(StaticPrefix, http.FileServer(http.Dir(cfg.StaticDir)))
		r.Get(StaticPrefix+"*", fs.ServeHTTP)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
	return r
}
