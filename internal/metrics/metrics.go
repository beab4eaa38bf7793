// Package metrics exposes Prometheus counters for the session runtime.
// The collectors are registered on the default registry; Handler serves
// them over HTTP when metrics are enabled in the config.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PacketsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gosu",
		Subsystem: "bancho",
		Name:      "packets_sent_total",
		Help:      "Packets enqueued towards the server, by packet name.",
	}, []string{"packet"})

	PacketsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gosu",
		Subsystem: "bancho",
		Name:      "packets_received_total",
		Help:      "Packets decoded from the server, by packet name.",
	}, []string{"packet"})

	BytesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gosu",
		Subsystem: "bancho",
		Name:      "bytes_received_total",
		Help:      "Raw response bytes received over the transport.",
	})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gosu",
		Subsystem: "bancho",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of one transport cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	Reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gosu",
		Subsystem: "bancho",
		Name:      "reconnects_total",
		Help:      "Connection losses that triggered the retry policy.",
	})

	LoginFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gosu",
		Subsystem: "bancho",
		Name:      "login_failures_total",
		Help:      "Rejected logins, by server-provided reason.",
	}, []string{"reason"})

	WebRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gosu",
		Subsystem: "web",
		Name:      "requests_total",
		Help:      "Requests against the osu! web endpoints, by endpoint and status.",
	}, []string{"endpoint", "status"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
