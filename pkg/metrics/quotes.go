package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Quote sources.
const (
	SourceWizard    = "wizard"
	SourceStateless = "stateless"
)

// Step transition outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// QuoteMetrics records quotation and wizard activity.
type QuoteMetrics struct {
	computed       *prometheus.CounterVec
	totals         *prometheus.HistogramVec
	transitions    *prometheus.CounterVec
	activeSessions prometheus.Gauge
	requests       *prometheus.HistogramVec
}

// NewQuoteMetrics registers the quotation metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	computed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_computed_total",
		Help: "Quotations computed, by source.",
	}, []string{"source"})
	totals := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_total_amount",
		Help:    "Distribution of quotation totals in pesos.",
		Buckets: []float64{1000, 2500, 5000, 10000, 15000, 25000, 50000, 100000},
	}, []string{"source"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_step_transitions_total",
		Help: "Wizard navigation calls, by action and outcome.",
	}, []string{"action", "outcome"})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wizard_active_sessions",
		Help: "Wizard sessions opened and not yet ended on this instance.",
	})
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency, by method, route pattern and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(computed, totals, transitions, active, requests)
	return &QuoteMetrics{
		computed:       computed,
		totals:         totals,
		transitions:    transitions,
		activeSessions: active,
		requests:       requests,
	}
}

// ObserveQuote counts one computed quotation and records its total.
func (m *QuoteMetrics) ObserveQuote(source string, total float64) {
	if m == nil || m.computed == nil {
		return
	}
	source = normalizeLabel(source)
	m.computed.WithLabelValues(source).Inc()
	m.totals.WithLabelValues(source).Observe(total)
}

// IncTransition counts a navigation call.
func (m *QuoteMetrics) IncTransition(action, outcome string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

func (m *QuoteMetrics) SessionStarted() {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *QuoteMetrics) SessionEnded() {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Dec()
}

// ObserveRequest records the latency of one HTTP request.
func (m *QuoteMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
