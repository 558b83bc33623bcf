package metrics

import (
	"CovidPulse/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetches       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	cycles        *prometheus.CounterVec
	cases         *prometheus.GaugeVec
	deaths        *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New registers the collectors on the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "covidpulse_fetches_total",
				Help: "Requests made to the statistics API",
			},
			[]string{"endpoint", "result"},
		),
		notifications: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "covidpulse_notifications_total",
				Help: "Notification dispatch attempts",
			},
			[]string{"kind", "result"},
		),
		cycles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "covidpulse_cycles_total",
				Help: "Tracker cycles by outcome",
			},
			[]string{"outcome"},
		),
		cases: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "covidpulse_region_cases",
				Help: "Total cases last reported for a region",
			},
			[]string{"region"},
		),
		deaths: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "covidpulse_region_deaths",
				Help: "Total deaths last reported for a region",
			},
			[]string{"region"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "covidpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordFetch(endpoint, result string) {
	r.fetches.WithLabelValues(endpoint, result).Inc()
}

func (r *Recorder) RecordNotification(kind models.NotificationKind, result string) {
	r.notifications.WithLabelValues(string(kind), result).Inc()
}

func (r *Recorder) RecordCycle(outcome models.CycleOutcomeKind) {
	r.cycles.WithLabelValues(string(outcome)).Inc()
}

func (r *Recorder) RecordRegion(region string, rec models.AggregateRecord) {
	r.cases.WithLabelValues(region).Set(float64(rec.Cases))
	r.deaths.WithLabelValues(region).Set(float64(rec.Deaths))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
