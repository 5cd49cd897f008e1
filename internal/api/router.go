package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/SupplyRank/internal/config"
	"github.com/MikeSquared-Agency/SupplyRank/internal/hermes"
	"github.com/MikeSquared-Agency/SupplyRank/internal/scoring"
	"github.com/MikeSquared-Agency/SupplyRank/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, ranker *scoring.Ranker, m *Metrics, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	defaults, err := cfg.DefaultPairwise()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimitPerMin))

	suppliers := NewSuppliersHandler(s, h, m, logger)
	ranking := NewRankingHandler(s, h, ranker, defaults, m, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/suppliers", suppliers.List)
		r.Get("/suppliers/{id}", suppliers.Get)
		r.Post("/suppliers/preview", suppliers.Preview)

		r.Post("/weights", ranking.Weights)
		r.Post("/ranking", ranking.Rank)

		r.Get("/chart/bubble", suppliers.Bubble)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Post("/suppliers", suppliers.Create)
		})
	})

	return r, nil
}

// NewMetricsRouter serves /health and the metrics in g. A nil gatherer serves
// the default registry.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if g == nil {
		r.Handle("/metrics", promhttp.Handler())
	} else {
		r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
	return r
}
