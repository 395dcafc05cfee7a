package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/memberledger/internal/domain"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	// Balance and integral mutations
	Mutations        *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
	BillsAppended    *prometheus.CounterVec
	TxRetries        *prometheus.CounterVec

	// Dictionary cache
	DictCacheLookups *prometheus.CounterVec

	// API
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Authentication and throttling
	AuthAttempts  *prometheus.CounterVec
	RateLimitHits *prometheus.CounterVec
}

// New creates all collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberledger_mutations_total",
				Help: "Balance and integral mutations by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
		MutationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "memberledger_mutation_duration_seconds",
				Help:    "Duration of a mutation including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"direction"},
		),
		BillsAppended: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberledger_bills_appended_total",
				Help: "Ledger bills written by kind and direction",
			},
			[]string{"kind", "direction"},
		),
		TxRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberledger_tx_retries_total",
				Help: "Transactions retried after a deadlock or serialization failure, by SQLSTATE",
			},
			[]string{"code"},
		),
		DictCacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberledger_dict_cache_lookups_total",
				Help: "Dictionary lookups by sign, split by cache result",
			},
			[]string{"result"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "memberledger_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "memberledger_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberledger_auth_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberledger_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"route"},
		),
	}
}

// ObserveMutation records one finished mutation.
func (m *Metrics) ObserveMutation(direction domain.Direction, outcome string, elapsed time.Duration) {
	m.Mutations.WithLabelValues(string(direction), outcome).Inc()
	m.MutationDuration.WithLabelValues(string(direction)).Observe(elapsed.Seconds())
}

// BillAppended records one committed bill.
func (m *Metrics) BillAppended(kind domain.BillKind, direction domain.Direction) {
	m.BillsAppended.WithLabelValues(string(kind), string(direction)).Inc()
}

// TxRetried records one retried transaction.
func (m *Metrics) TxRetried(code string) {
	m.TxRetries.WithLabelValues(code).Inc()
}

// DictCacheLookup records a cache hit or miss.
func (m *Metrics) DictCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.DictCacheLookups.WithLabelValues(result).Inc()
}

// AuthAttempt records a login outcome.
func (m *Metrics) AuthAttempt(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.AuthAttempts.WithLabelValues(outcome).Inc()
}

// RateLimited records a throttled request.
func (m *Metrics) RateLimited(route string) {
	m.RateLimitHits.WithLabelValues(route).Inc()
}
