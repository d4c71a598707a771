// metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LogRecordsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_log_records_loaded",
		Help: "Number of telemetry log records held by the dashboard.",
	})
	LogLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_log_load_failures_total",
		Help: "Failed attempts to load the telemetry log.",
	})
	BoxTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_box_transitions_total",
		Help: "Satellite box state transitions by kind.",
	}, []string{"transition"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"path", "method", "code"})
	httpDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})
)

// Transition labels for BoxTransitions.
const (
	TransitionShowSummary  = "show_summary"
	TransitionCollapse     = "collapse"
	TransitionExpand       = "expand"
	TransitionShrink       = "shrink"
	TransitionOverlayReset = "overlay_reset"
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

var exactRoutes = map[string]bool{
	"/":              true,
	"/healthz":       true,
	"/readyz":        true,
	"/metrics":       true,
	"/overlay":       true,
	"/api/overlay":   true,
	"/api/dashboard": true,
	"/api/log":       true,
	"/api/status":    true,
}

// normalizeRoute collapses per-satellite paths to one label each so the
// label set stays bounded.
func normalizeRoute(path string) string {
	if exactRoutes[path] {
		return path
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 3 && parts[0] == "boxes" && (parts[2] == "primary" || parts[2] == "secondary"):
		return "/boxes/{n}/" + parts[2]
	case len(parts) == 4 && parts[0] == "api" && parts[1] == "boxes" && (parts[3] == "primary" || parts[3] == "secondary"):
		return "/api/boxes/{n}/" + parts[3]
	case len(parts) == 4 && parts[0] == "api" && parts[1] == "satellites" && parts[3] == "latest":
		return "/api/satellites/{n}/latest"
	case len(parts) >= 1 && parts[0] == "static":
		return "/static/*"
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := normalizeRoute(r.URL.Path)
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
