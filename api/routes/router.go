package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/receipt-processor/api/controllers"
	"github.com/angelmondragon/receipt-processor/api/middleware"
	"github.com/angelmondragon/receipt-processor/api/responses"
	"github.com/angelmondragon/receipt-processor/internal/receipts"
	"github.com/angelmondragon/receipt-processor/pkg/config"
	pkgerrors "github.com/angelmondragon/receipt-processor/pkg/errors"
	"github.com/angelmondragon/receipt-processor/pkg/logger"
	"github.com/angelmondragon/receipt-processor/pkg/metrics"
	pkgredis "github.com/angelmondragon/receipt-processor/pkg/redis"
	"github.com/angelmondragon/receipt-processor/pkg/types"
)

// Dependencies are the optional collaborators of the router. Any of them may
// be nil: the matching middleware or readiness check is then skipped.
type Dependencies struct {
	DB             controllers.Pinger
	Redis          *pkgredis.Client
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svc receipts.Service, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteJSON(w, http.StatusMethodNotAllowed, types.ErrorEnvelope{Error: types.APIError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method not allowed",
		}})
	})

	// Typed nil pointers must not leak into the interface parameters below.
	var (
		idem    pkgredis.IdempotencyStore
		limiter pkgredis.RateLimiter
		redisP  controllers.Pinger
	)
	if deps.Redis != nil {
		idem, limiter, redisP = deps.Redis, deps.Redis, deps.Redis
	}

	processPolicy := middleware.NewRateLimitPolicy("receipts_process", cfg.RateLimit.ProcessWindow, cfg.RateLimit.ProcessLimit)

	r.Get("/", controllers.Home())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    redisP,
		}))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/receipts", func(r chi.Router) {
		r.With(
			middleware.RateLimit(processPolicy, limiter, logg),
			middleware.Idempotency(idem, logg),
		).Post("/process", controllers.ProcessReceipt(svc, logg))
		r.Get("/{id}/points", controllers.ReceiptPoints(svc, logg))
	})

	return r
}
