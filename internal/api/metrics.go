package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nishant152030/Project-manager-2/internal/scheduler"
)

const metricsNamespace = "projectmgr"

// Schedule outcomes recorded by ScheduleRequestsTotal.
const (
	outcomeOK                 = "ok"
	outcomeUnknownDependency  = "unknown_dependency"
	outcomeCircularDependency = "circular_dependency"
	outcomeDuplicateTitle     = "duplicate_title"
	outcomeInvalid            = "invalid"
)

// Metrics holds the Prometheus collectors for the HTTP API.
type Metrics struct {
	// RequestsTotal counts requests by method, route template and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes handler latency by method and route template.
	RequestDuration *prometheus.HistogramVec

	// ScheduleRequestsTotal counts schedule computations by outcome.
	ScheduleRequestsTotal *prometheus.CounterVec

	// ScheduleTasks observes how many tasks each schedule request carried.
	ScheduleTasks prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// Pass prometheus.NewRegistry() in tests to avoid global state.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP handler latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		ScheduleRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "schedule",
				Name:      "requests_total",
				Help:      "Schedule computations by outcome",
			},
			[]string{"outcome"},
		),

		ScheduleTasks: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "schedule",
				Name:      "tasks",
				Help:      "Number of tasks per schedule request",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			},
		),
	}
}

// Middleware records request count and latency. Routes are labelled by
// their template so IDs do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// observeSchedule records one schedule attempt.
func (m *Metrics) observeSchedule(taskCount int, err error) {
	m.ScheduleTasks.Observe(float64(taskCount))
	m.ScheduleRequestsTotal.WithLabelValues(scheduleOutcome(err)).Inc()
}

func scheduleOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, scheduler.ErrUnknownDependency):
		return outcomeUnknownDependency
	case errors.Is(err, scheduler.ErrCircularDependency):
		return outcomeCircularDependency
	case errors.Is(err, scheduler.ErrDuplicateTitle):
		return outcomeDuplicateTitle
	default:
		return outcomeInvalid
	}
}
