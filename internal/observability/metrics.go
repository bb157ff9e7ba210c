package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// catalog client and the feed loop.
type Metrics struct {
	QueriesTotal   prometheus.Counter
	QueryErrors    *prometheus.CounterVec // labels: stage={validate,request,decode}
	APIDuration    prometheus.Histogram
	EventsFetched  prometheus.Counter
	EventsFiltered prometheus.Counter // dropped by the country filter

	// Feed loop metrics.
	FeedRunning     prometheus.Gauge
	PollsTotal      *prometheus.CounterVec // labels: outcome={success,error}
	EventsPublished prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "queries_total",
			Help:      "Total catalog queries attempted.",
		}),
		QueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "query_errors_total",
			Help:      "Query failures by stage.",
		}, []string{"stage"}),
		APIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "api_duration_seconds",
			Help:      "USGS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_fetched_total",
			Help:      "Events returned by the catalog before country filtering.",
		}),
		EventsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_filtered_total",
			Help:      "Events dropped because their epicenter fell outside the requested country.",
		}),
		FeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "feed_running",
			Help:      "1 when the poll loop is active, 0 when shut down.",
		}),
		PollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "polls_total",
			Help:      "Poll cycles by outcome.",
		}, []string{"outcome"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_published_total",
			Help:      "Events written to the sink topic.",
		}),
	}

	prometheus.MustRegister(
		m.QueriesTotal,
		m.QueryErrors,
		m.APIDuration,
		m.EventsFetched,
		m.EventsFiltered,
		m.FeedRunning,
		m.PollsTotal,
		m.EventsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QueriesTotal:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "queries_total"}),
		QueryErrors:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_feed", Name: "query_errors_total"}, []string{"stage"}),
		APIDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_feed", Name: "api_duration_seconds"}),
		EventsFetched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "events_fetched_total"}),
		EventsFiltered:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "events_filtered_total"}),
		FeedRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_feed", Name: "feed_running"}),
		PollsTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_feed", Name: "polls_total"}, []string{"outcome"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "events_published_total"}),
	}
}
