package controllers

import (
	"context"
	"net/http"

	"github.com/stitchfold/admin-gateway/api/responses"
	"github.com/stitchfold/admin-gateway/pkg/config"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/logger"
)

const envHeader = "X-Stitchfold-Env"

// Pinger is one upstream dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency status and degrades to 503 when any
// check fails.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisPinger, catalogPinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		check := func(name string, p Pinger) {
			if p == nil {
				checks[name] = "not configured"
				healthy = false
				return
			}
			if err := p.Ping(r.Context()); err != nil {
				checks[name] = err.Error()
				healthy = false
				if logg != nil {
					logg.Error(logg.WithField(r.Context(), "dependency", name), "readiness check failed", err)
				}
				return
			}
			checks[name] = "ok"
		}

		check("redis", redisPinger)
		check("catalog", catalogPinger)

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
					WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
