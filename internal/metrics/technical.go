package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestsTotal общее количество HTTP запросов
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// httpRequestDuration гистограмма длительности HTTP запросов
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// httpRequestSize размер тела запроса
	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_size_bytes",
			Help:      "HTTP request size in bytes",
			Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveHTTPRequest записывает счётчик, длительность и размер тела одного запроса.
func ObserveHTTPRequest(method, endpoint string, status int, duration time.Duration, size int64) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, code).Observe(duration.Seconds())
	if size > 0 {
		httpRequestSize.WithLabelValues(method, endpoint).Observe(float64(size))
	}
}
