package services

import "github.com/prometheus/client_golang/prometheus"

var (
	metricFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airdrop",
		Name:      "feed_fetches_total",
		Help:      "Total upstream feed fetch attempts by result",
	}, []string{"result"})

	metricChangesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "airdrop",
		Name:      "feed_changes_total",
		Help:      "Total visible changes detected between fetches",
	})

	metricCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airdrop",
		Name:      "cache_requests_total",
		Help:      "On-demand snapshot requests by cache outcome",
	}, []string{"outcome"})

	metricLastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "airdrop",
		Name:      "feed_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful feed fetch",
	})

	metricEventCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "airdrop",
		Name:      "feed_events",
		Help:      "Number of events in the current snapshot",
	})
)

func init() {
	prometheus.MustRegister(
		metricFetchesTotal,
		metricChangesTotal,
		metricCacheRequests,
		metricLastSuccessTS,
		metricEventCount,
	)
}
