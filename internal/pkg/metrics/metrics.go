package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ApiConnectivityStatus records the last health-check outcome against the
	// fleet service (1=reachable, 0=unreachable).
	ApiConnectivityStatus = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartmove_api_connectivity_status",
			Help: "The connectivity status to the fleet API (1=Reachable, 0=Unreachable).",
		},
	)

	// ApiRequestsTotal counts fleet API calls by endpoint path and outcome.
	ApiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartmove_api_requests_total",
			Help: "Total number of requests issued against the fleet API.",
		},
		[]string{"path", "outcome"}, // outcome: success/error
	)

	// NotificationsTotal counts emitted operator notifications by severity.
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartmove_notifications_total",
			Help: "Total number of operator notifications emitted.",
		},
		[]string{"severity"},
	)
)

// Registry is the console-wide metrics registry served at /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(ApiConnectivityStatus)
	Registry.MustRegister(ApiRequestsTotal)
	Registry.MustRegister(NotificationsTotal)
	Registry.MustRegister(collectors.NewGoCollector())
}

// Handler returns the HTTP handler exposing the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
