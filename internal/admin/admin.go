// Package admin serves the operator-facing HTTP surface: Prometheus
// scrape endpoint, a liveness check, and a small debug summary of
// keyspace size. Routed with gorilla/mux rather than stdlib's
// http.ServeMux, matching the pack's ClusterCockpit-cc-backend style
// of API routing.
package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// KeyspaceInfo is supplied by the caller so this package never depends
// directly on the store.
type KeyspaceInfo struct {
	DBSize    int
	StartedAt time.Time
}

// InfoProvider returns a live snapshot for /debug/info.
type InfoProvider func() KeyspaceInfo

// NewRouter builds the admin HTTP handler.
func NewRouter(reg *prometheus.Registry, info InfoProvider) http.Handler {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/debug/info", func(w http.ResponseWriter, req *http.Request) {
		snap := info()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"db_size":    snap.DBSize,
			"uptime_sec": int(time.Since(snap.StartedAt).Seconds()),
		})
	}).Methods(http.MethodGet)

	return r
}
