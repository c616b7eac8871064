// Package router собирает HTTP маршруты сервера синхронизации.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/gymkeeper/internal/server/handlers"
	"github.com/iudanet/gymkeeper/internal/server/metrics"
	"github.com/iudanet/gymkeeper/internal/server/middleware"
	"github.com/iudanet/gymkeeper/internal/server/storage"
)

// Пути API
const (
	HealthPath  = "/api/v1/health"
	MetricsPath = "/metrics"
	PushPath    = "/api/v1/sync/push"
	PullPath    = "/api/v1/sync/pull"
)

// Deps зависимости маршрутов
type Deps struct {
	Logger      *slog.Logger
	Storage     storage.RecordStorage
	DB          handlers.Pinger
	Metrics     *metrics.Metrics        // nil отключает /metrics и учет запросов
	RateLimiter *middleware.RateLimiter // nil отключает ограничение частоты
	JWT         handlers.JWTConfig
	Version     string
}

// New создает chi router со всеми маршрутами API
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware(deps.Logger))
	r.Use(middleware.LoggingMiddleware(deps.Logger, HealthPath, MetricsPath))

	var syncMetrics handlers.SyncMetrics
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
		r.Method(http.MethodGet, MetricsPath, deps.Metrics.Handler())
		syncMetrics = deps.Metrics
	}

	health := handlers.NewHealthHandler(deps.Logger, deps.DB, deps.Version)
	r.Get(HealthPath, health.Health)

	sync := handlers.NewSyncHandler(deps.Logger, deps.Storage, syncMetrics)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(deps.Logger, deps.JWT))
		if deps.RateLimiter != nil {
			r.Use(middleware.RateLimitMiddleware(deps.RateLimiter, deps.Logger))
		}

		r.Post(PushPath, sync.Push)
		r.Get(PullPath, sync.Pull)
	})

	return r
}
