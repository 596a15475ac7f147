package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	visitsScheduled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_visits_scheduled_total",
			Help: "Total number of visits scheduled",
		},
		[]string{"created_by"},
	)

	visitsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_visits_completed_total",
			Help: "Total number of visits completed by dentists",
		},
	)

	schedulingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_scheduling_conflicts_total",
			Help: "Total number of visit creations rejected due to overlap",
		},
	)

	paymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"method"},
	)

	paymentAmounts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_payment_amount_total",
			Help: "Total amount of money received across all payments",
		},
	)
)

// RecordVisitScheduled increments the scheduled-visit counter. createdBy is
// the role that created the visit (manager or dentist).
func RecordVisitScheduled(createdBy string) {
	visitsScheduled.WithLabelValues(createdBy).Inc()
}

// RecordVisitCompleted increments the completed-visit counter.
func RecordVisitCompleted() {
	visitsCompleted.Inc()
}

// RecordSchedulingConflict increments the overlap-rejection counter.
func RecordSchedulingConflict() {
	schedulingConflicts.Inc()
}

// RecordPayment tracks a recorded payment and its amount.
func RecordPayment(method string, amount float64) {
	paymentsRecorded.WithLabelValues(method).Inc()
	paymentAmounts.Add(amount)
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// HTTPMiddleware captures request count, duration and in-flight gauges for
// every route.
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
