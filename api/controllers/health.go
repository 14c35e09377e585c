package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/sistemaflotilla/flotilla-backend/api/responses"
	"github.com/sistemaflotilla/flotilla-backend/pkg/config"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Flotilla-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the datasources behind the API before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Flotilla-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		var failed error
		for name, p := range map[string]pinger{"database": dbP, "redis": redisP} {
			if p == nil {
				checks[name] = "not configured"
				failed = multierr.Append(failed, fmt.Errorf("%s not configured", name))
				continue
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = err.Error()
				failed = multierr.Append(failed, fmt.Errorf("%s: %w", name, err))
				continue
			}
			checks[name] = "ok"
		}

		if failed != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, failed, "dependencies unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
