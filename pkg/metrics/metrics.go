package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LicensesPurchased = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edupanel_licenses_purchased_total",
			Help: "Licenses added through simulated purchases, by package type.",
		},
		[]string{"package_type"},
	)

	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edupanel_emails_total",
			Help: "Outbound e-mail attempts by type and status.",
		},
		[]string{"type", "status"},
	)

	ChapterCompletions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "edupanel_chapter_completions_total",
		Help: "Chapters newly marked as completed.",
	})

	EmployeesInvited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "edupanel_employees_invited_total",
		Help: "Employee accounts created by invitation.",
	})
)

// Init registers all collectors in the default registry. Call once from main.
func Init() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		LicensesPurchased, EmailsSent, ChapterCompletions, EmployeesInvited,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records request count, latency and in-flight gauge per route template.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
