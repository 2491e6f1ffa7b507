// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feeder_http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feeder_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// EventsRecorded counts feeding events persisted.
	EventsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feeder_events_recorded_total",
		Help: "Feeding events persisted.",
	})

	// ScheduleChanges counts schedule writes by action (created, duplicate, deleted).
	ScheduleChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feeder_schedule_changes_total",
		Help: "Schedule writes, by action.",
	}, []string{"action"})

	// NotifyFailures counts notifications that could not be delivered to the broker.
	NotifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feeder_notify_failures_total",
		Help: "Device notifications that failed to publish.",
	})
)

// Middleware records request count and latency. Unmatched routes share one
// label value so scanners cannot blow up cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
