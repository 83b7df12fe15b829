package obs

import (
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry and the collectors the server updates.
type Metrics struct {
	registry         *prometheus.Registry
	requestDuration  *prometheus.HistogramVec
	kycVerifications *prometheus.CounterVec
	interestEvents   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		kycVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_verifications_total",
			Help: "KYC pipeline runs by outcome.",
		}, []string{"outcome"}),
		interestEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "property_interests_total",
			Help: "Interest workflow transitions by resulting status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.kycVerifications,
		m.interestEvents,
	)
	return m
}

// KYCOutcome counts one pipeline run: eligible, ineligible or unavailable.
func (m *Metrics) KYCOutcome(outcome string) {
	if m == nil {
		return
	}
	m.kycVerifications.WithLabelValues(outcome).Inc()
}

// InterestTransition counts an interest reaching status.
func (m *Metrics) InterestTransition(status string) {
	if m == nil {
		return
	}
	m.interestEvents.WithLabelValues(status).Inc()
}

// Middleware observes request latency per registered route.
func (m *Metrics) Middleware(ctx iris.Context) {
	start := time.Now()
	ctx.Next()

	route := "unmatched"
	if r := ctx.GetCurrentRoute(); r != nil {
		route = r.Path()
	}
	m.requestDuration.
		WithLabelValues(ctx.Method(), route, strconv.Itoa(ctx.GetStatusCode())).
		Observe(time.Since(start).Seconds())
}

func (m *Metrics) Handler() iris.Handler {
	return iris.FromStd(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
