package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedFetchTotal counts feed fetch+repair attempts by outcome.
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricefeeds_feed_fetch_total",
			Help: "Total number of pricing feed loads (by service, mode, and status).",
		},
		[]string{"service", "mode", "status"},
	)

	// FeedFetchDuration measures fetch+repair latency per feed.
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricefeeds_feed_fetch_duration_seconds",
			Help:    "Duration of pricing feed loads in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms → ~10s
		},
		[]string{"service", "mode"},
	)

	// Offerings is the number of offerings in the last built document.
	Offerings = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricefeeds_offerings",
			Help: "Offerings in the most recently built pricing document.",
		},
		[]string{"service", "mode"},
	)

	// NATSPublishErrors tracks NATS publish failures by subject.
	NATSPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_publish_errors_total",
			Help: "Number of NATS publish failures by subject.",
		},
		[]string{"subject"},
	)
)

// IncFeedFetch increments the feed load counter.
func IncFeedFetch(service, mode, status string) {
	FeedFetchTotal.WithLabelValues(service, mode, status).Inc()
}

// ObserveDuration records elapsed time since start into a HistogramVec or SummaryVec.
func ObserveDuration(v any, start time.Time, labels ...string) {
	duration := time.Since(start).Seconds()
	switch metric := v.(type) {
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labels...).Observe(duration)
	case *prometheus.SummaryVec:
		metric.WithLabelValues(labels...).Observe(duration)
	}
}

// SetOfferings records the size of a finished document.
func SetOfferings(service, mode string, n int) {
	Offerings.WithLabelValues(service, mode).Set(float64(n))
}

// IncNATSPublishError increments the NATS publish error counter for the given subject.
func IncNATSPublishError(subject string) {
	NATSPublishErrors.WithLabelValues(subject).Inc()
}

// WriteTextfile dumps the default registry in node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
