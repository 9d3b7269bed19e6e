// Package metrics exposes prometheus counters/gauges for the server,
// generalizing the teacher's stats.go (ServerStats/incrementStat)
// from a hand-rolled mutex-guarded struct to the ecosystem's standard
// collector registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every collector the server touches per request.
type Metrics struct {
	CommandsTotal   *prometheus.CounterVec
	ConnectionsOpen prometheus.Gauge
	KeyspaceSize    prometheus.Gauge
	ExpiredKeys     prometheus.Counter
	BytesRead       prometheus.Counter
	BytesWritten    prometheus.Counter
}

// New registers and returns the server's collectors against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gofast",
			Name:      "commands_total",
			Help:      "Total commands processed, labeled by command name and outcome.",
		}, []string{"command", "outcome"}),
		ConnectionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gofast",
			Name:      "connections_open",
			Help:      "Number of currently open client connections.",
		}),
		KeyspaceSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gofast",
			Name:      "keyspace_size",
			Help:      "Number of live keys in the keyspace.",
		}),
		ExpiredKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gofast",
			Name:      "expired_keys_total",
			Help:      "Total keys removed by active expiration.",
		}),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gofast",
			Name:      "bytes_read_total",
			Help:      "Total bytes read from client connections.",
		}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gofast",
			Name:      "bytes_written_total",
			Help:      "Total bytes written to client connections.",
		}),
	}

	reg.MustRegister(
		m.CommandsTotal,
		m.ConnectionsOpen,
		m.KeyspaceSize,
		m.ExpiredKeys,
		m.BytesRead,
		m.BytesWritten,
	)
	return m
}
