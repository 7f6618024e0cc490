package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cacheLookups   *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	articlesScored prometheus.Counter
	forecasts      *prometheus.CounterVec
	sentimentScore *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_cache_lookups_total",
				Help: "Cache lookups partitioned by cache name and outcome",
			},
			[]string{"cache", "outcome"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_provider_errors_total",
				Help: "Errors from upstream data providers",
			},
			[]string{"provider"},
		),
		articlesScored: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fincast_articles_scored_total",
				Help: "News articles run through the sentiment classifier",
			},
		),
		forecasts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_forecasts_total",
				Help: "Completed forecasts by horizon",
			},
			[]string{"horizon"},
		),
		sentimentScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fincast_sentiment_score",
				Help: "Last aggregate sentiment score per symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCacheHit records a cache hit for the named cache.
func (r *Recorder) RecordCacheHit(cache string) {
	r.cacheLookups.WithLabelValues(cache, "hit").Inc()
}

// RecordCacheMiss records a cache miss for the named cache.
func (r *Recorder) RecordCacheMiss(cache string) {
	r.cacheLookups.WithLabelValues(cache, "miss").Inc()
}

// RecordProviderError records an upstream provider failure.
func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

// RecordArticlesScored records how many articles went through the classifier.
func (r *Recorder) RecordArticlesScored(n int) {
	r.articlesScored.Add(float64(n))
}

// RecordForecast records a completed forecast.
func (r *Recorder) RecordForecast(horizon string) {
	r.forecasts.WithLabelValues(horizon).Inc()
}

// RecordSentimentScore records the last aggregate score for a symbol.
func (r *Recorder) RecordSentimentScore(symbol string, score float64) {
	r.sentimentScore.WithLabelValues(symbol).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
