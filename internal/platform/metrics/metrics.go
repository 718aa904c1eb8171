package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is safe to use everywhere; increments become no-ops, which keeps tests
// free of registry bookkeeping.
type Metrics struct {
	SessionsOpened prometheus.Counter
	SignUps        prometheus.Counter
	Logins         *prometheus.CounterVec
	Logouts        prometheus.Counter
	CartItemsAdded prometheus.Counter
	RequestLatency *prometheus.HistogramVec
}

// Login result label values.
const (
	LoginResultSuccess  = "success"
	LoginResultRejected = "rejected"
)

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopez_sessions_opened_total",
			Help: "Total number of storefront sessions opened",
		}),
		SignUps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopez_signups_total",
			Help: "Total number of successful sign-ups",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shopez_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
		Logouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopez_logouts_total",
			Help: "Total number of logouts",
		}),
		CartItemsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopez_cart_items_added_total",
			Help: "Total number of items added to carts",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shopez_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncSessionsOpened() {
	if m == nil {
		return
	}
	m.SessionsOpened.Inc()
}

func (m *Metrics) IncSignUps() {
	if m == nil {
		return
	}
	m.SignUps.Inc()
}

func (m *Metrics) IncLogins(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) IncLogouts() {
	if m == nil {
		return
	}
	m.Logouts.Inc()
}

func (m *Metrics) IncCartItemsAdded() {
	if m == nil {
		return
	}
	m.CartItemsAdded.Inc()
}

// ObserveRequest records one request's latency in seconds.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, status).Observe(seconds)
}

// RegisterSessionsLive exposes the current number of live sessions as a
// gauge sampled at scrape time.
func (m *Metrics) RegisterSessionsLive(count func() int) {
	if m == nil {
		return
	}
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "shopez_sessions_live",
		Help: "Number of session records currently held in memory",
	}, func() float64 { return float64(count()) })
}
