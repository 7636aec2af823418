package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ExportsTotal counts document exports by outcome (ok, failed, empty, cancelled)
	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_exports_total",
			Help: "Total number of deck exports by status",
		},
		[]string{"status"},
	)

	// ExportDuration records end-to-end export time
	ExportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deck_export_duration_seconds",
			Help:    "Duration of deck exports in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// PagesRendered counts rendered pages by slide kind
	PagesRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_pages_rendered_total",
			Help: "Total number of rendered pages by slide type",
		},
		[]string{"kind"},
	)

	// ImageLoadFailures counts images replaced by their fallback
	ImageLoadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_image_load_failures_total",
			Help: "Total number of images that failed to load, by page element",
		},
		[]string{"element"},
	)

	// CatalogFallbacks counts catalog sources that failed and were skipped
	CatalogFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_catalog_fallback_total",
			Help: "Total number of catalog source failures that fell through to the next source",
		},
		[]string{"source"},
	)
)

var registerOnce sync.Once

// Register registers every collector with the default registry; safe to call repeatedly
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDurationHistogram,
			ExportsTotal,
			ExportDuration,
			PagesRendered,
			ImageLoadFailures,
			CatalogFallbacks,
		)
	})
}

// unmatchedRoute labels requests that matched no route
const unmatchedRoute = "unmatched"

// Middleware records request count and latency labelled by the chi route pattern.
// Requests outside the route table share one label so arbitrary paths cannot grow
// the series count.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := strconv.Itoa(ww.Status())
		RequestCounter.WithLabelValues(r.Method, path, status).Inc()
		RequestDurationHistogram.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
