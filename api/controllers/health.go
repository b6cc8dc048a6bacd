package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/receipt-processor/api/responses"
	pkgerrors "github.com/angelmondragon/receipt-processor/pkg/errors"
	"github.com/angelmondragon/receipt-processor/pkg/logger"
	"github.com/angelmondragon/receipt-processor/pkg/types"
)

const readyTimeout = 2 * time.Second

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteOK(w, types.HealthResponse{Status: "live", Env: env})
	}
}

// HealthReady pings every named dependency. Nil pingers are skipped, so an
// in-memory store or a missing redis never fail readiness.
func HealthReady(env string, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		var failed error
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				if failed == nil {
					failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable")
				}
				continue
			}
			checks[name] = "ok"
		}

		if failed != nil {
			if logg != nil {
				logg.Warn(logg.WithField(ctx, "checks", checks), "health.not_ready")
			}
			responses.WriteJSON(w, http.StatusServiceUnavailable, types.HealthResponse{Status: "not_ready", Env: env, Checks: checks})
			return
		}
		responses.WriteOK(w, types.HealthResponse{Status: "ready", Env: env, Checks: checks})
	}
}
