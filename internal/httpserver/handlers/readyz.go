package handlers

import (
	"net/http"

	"github.com/pinbox/pinbox/internal/httpserver/deps"
	"github.com/pinbox/pinbox/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Cache string `json:"cache,omitempty"` // "ok" | "down" | absent when disabled
}

// Readyz reports readiness: the database must answer a ping. The cache is
// advisory only — a down Redis is reported but never fails readiness.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Error("readiness check failed: database unreachable",
				logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}

		resp := readyzResponse{Ready: true}
		if d.Cache != nil {
			resp.Cache = "ok"
			if err := d.Cache.Ping(ctx); err != nil {
				d.Logger.Warn("cache unreachable", logger.Error(err))
				resp.Cache = "down"
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
