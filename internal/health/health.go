// Package health implements a liveness endpoint: 200 once the Scanner
// has completed at least one scan, matching the original bot's web
// health check.
package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// Checker tracks readiness and serves it over HTTP.
type Checker struct {
	ready atomic.Bool
}

// MarkReady records that at least one scan has completed.
func (c *Checker) MarkReady() {
	c.ready.Store(true)
}

// Handler returns an http.Handler suitable for mounting at /health. It
// reports 200 {"status":"ok"} once ready, 503 {"status":"starting"}
// before the first scan completes.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !c.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "starting"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
}
