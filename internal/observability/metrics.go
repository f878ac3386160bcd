package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	apiRequestsTotal   *prometheus.CounterVec
	apiLatencySeconds  *prometheus.HistogramVec
	apiErrorsTotal     *prometheus.CounterVec
	submissionsTotal   *prometheus.CounterVec
	submissionLatency  prometheus.Histogram
	badgesAwarded      prometheus.Counter
	notificationsTotal *prometheus.CounterVec
	sseClientsActive   prometheus.Gauge
	leaderboardCache   *prometheus.CounterVec
	galleryLatency     prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teachback",
			Name:      "requests_total",
			Help:      "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "teachback",
			Name:      "latency_seconds",
			Help:      "Latency distribution for API requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teachback",
			Name:      "errors_total",
			Help:      "Total number of error responses returned.",
		}, []string{"method", "route", "status"})

		submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teachback",
			Name:      "submissions_total",
			Help:      "Explanation submissions by type and outcome.",
		}, []string{"type", "status"})

		submissionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "teachback",
			Name:      "submission_duration_seconds",
			Help:      "End-to-end duration of the submission pipeline.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		})

		badgesAwarded = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "teachback",
			Name:      "badges_awarded_total",
			Help:      "Total number of badges awarded.",
		})

		notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teachback",
			Name:      "notifications_published_total",
			Help:      "Notifications published by type.",
		}, []string{"type"})

		sseClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "teachback",
			Name:      "sse_clients_active",
			Help:      "Currently connected notification stream clients.",
		})

		leaderboardCache = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teachback",
			Name:      "leaderboard_cache_events_total",
			Help:      "Leaderboard cache hits and misses.",
		}, []string{"result"})

		galleryLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "teachback",
			Name:      "gallery_latency_seconds",
			Help:      "Latency distribution for gallery listings.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			submissionsTotal,
			submissionLatency,
			badgesAwarded,
			notificationsTotal,
			sseClientsActive,
			leaderboardCache,
			galleryLatency,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// SubmissionsTotal exposes the submission outcome counter.
func SubmissionsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsTotal
}

// SubmissionLatency exposes the submission pipeline duration histogram.
func SubmissionLatency() prometheus.Histogram {
	RegisterMetrics()
	return submissionLatency
}

// BadgesAwardedTotal exposes the badge award counter.
func BadgesAwardedTotal() prometheus.Counter {
	RegisterMetrics()
	return badgesAwarded
}

// NotificationsPublishedTotal exposes the notification counter.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsTotal
}

// SSEClientsActive exposes the active stream client gauge.
func SSEClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return sseClientsActive
}

// LeaderboardCacheEvents exposes the leaderboard cache hit/miss counter.
func LeaderboardCacheEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return leaderboardCache
}

// GalleryLatency exposes the gallery latency histogram.
func GalleryLatency() prometheus.Histogram {
	RegisterMetrics()
	return galleryLatency
}
