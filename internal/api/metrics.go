package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/apperror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "news_api"

// Metrics contains the HTTP metrics of the API
type Metrics struct {
	// RequestsTotal counts requests by method, matched route and status
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes request latency by method and matched route
	RequestDuration *prometheus.HistogramVec

	// ErrorsTotal counts error responses by error kind
	ErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates the API metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "errors_total",
			Help:      "Total number of error responses by kind",
		}, []string{"kind"}),
	}
}

// routeLabel returns the matched route pattern, keeping label cardinality bounded
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// metricsMiddleware records request counts, latency and error kinds
func metricsMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := routeLabel(c)
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())

		for _, ginErr := range c.Errors {
			var appErr *apperror.Error
			if errors.As(ginErr.Err, &appErr) {
				m.ErrorsTotal.WithLabelValues(string(appErr.Kind)).Inc()
			}
		}
	}
}
