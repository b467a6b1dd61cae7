package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"booking-status-api/pkg/lambda"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_status_requests_total",
			Help: "Total number of booking status requests handled.",
		},
		[]string{"method", "code"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_status_request_duration_seconds",
			Help:    "Duration of booking status requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// Metrics records request counts and latencies
func Metrics() Middleware {
	return func(next lambda.HandlerFunc) lambda.HandlerFunc {
		return func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := http.StatusInternalServerError
			if err == nil && resp != nil {
				code = resp.StatusCode
			}
			requestsTotal.WithLabelValues(req.Method, strconv.Itoa(code)).Inc()
			requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}

// MetricsHandler returns the Prometheus metrics endpoint handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
