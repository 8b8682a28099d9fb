package main

import (
	"net/http"

	"github.com/angeloszaimis/static-server/internal/healthcheck"
	"github.com/angeloszaimis/static-server/internal/metrics"
)

// setupAdminRouter serves operational endpoints on a listener separate from
// the file server, so they never shadow a file under root.
func setupAdminRouter(metricsCollector *metrics.Collector, root *healthcheck.Root) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /metrics", metricsCollector.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !root.IsHealthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})

	return mux
}
