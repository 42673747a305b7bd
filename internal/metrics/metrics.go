package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/fastagent-dev/fastagent/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fastagent",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fastagent",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Authentication metrics

	AuthDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fastagent",
		Name:      "auth_decisions_total",
		Help:      "Request authentication outcomes.",
	}, []string{"outcome"}) // anonymous, authenticated, rejected

	TokensIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fastagent",
		Name:      "tokens_issued_total",
		Help:      "Tokens issued, by scope.",
	}, []string{"scope"})

	TokensReapedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fastagent",
		Name:      "tokens_reaped_total",
		Help:      "Expired tokens removed by the reaper.",
	})

	RequestsTooLargeTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fastagent",
		Name:      "requests_too_large_total",
		Help:      "Requests aborted for exceeding the body size ceiling.",
	})

	// Agent runtime metrics

	AgentProxyDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fastagent",
		Name:      "agent_proxy_duration_seconds",
		Help:      "Latency of calls forwarded to the agent runtime.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"operation", "status"})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AuthDecisionsTotal,
		TokensIssuedTotal,
		TokensReapedTotal,
		RequestsTooLargeTotal,
		AgentProxyDuration,
	)
}

// NewServer exposes /metrics plus liveness and readiness probes on a
// separate listener so operational traffic never competes with the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, checker.Liveness(r.Context()))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, result)
	})

	return &http.Server{Addr: addr, Handler: mux}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
