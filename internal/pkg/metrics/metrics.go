package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bank_loan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bank_loan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	loansCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bank_loan",
			Name:      "loans_created_total",
			Help:      "Total number of loan requests created.",
		},
	)

	loansReviewed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bank_loan",
			Name:      "loans_reviewed_total",
			Help:      "Total number of loan reviews by resulting status.",
		},
		[]string{"status"},
	)

	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bank_loan",
			Name:      "loan_calculations_total",
			Help:      "Total number of payment calculations, split by cache outcome.",
		},
		[]string{"cache"},
	)

	pendingLoans = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bank_loan",
			Name:      "pending_loans",
			Help:      "Pending loans seen by the last digest run.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		loansCreated,
		loansReviewed,
		calculations,
		pendingLoans,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one finished request
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// LoanCreated counts a persisted loan request
func LoanCreated() {
	loansCreated.Inc()
}

// LoanReviewed counts a successful review
func LoanReviewed(status string) {
	loansReviewed.WithLabelValues(status).Inc()
}

// Calculation counts a payment calculation; hit reports whether the cache served it
func Calculation(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	calculations.WithLabelValues(outcome).Inc()
}

// SetPendingLoans publishes the pending backlog size
func SetPendingLoans(n int64) {
	pendingLoans.Set(float64(n))
}
