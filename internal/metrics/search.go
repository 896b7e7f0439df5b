package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and classification Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archivist",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "status"},
	)

	ArchiveRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "archivist",
			Name:      "archive_request_duration_seconds",
			Help:      "Upstream archive API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	ArchiveCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archivist",
			Name:      "archive_cache_total",
			Help:      "Archive response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	NSFWFlaggedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archivist",
			Name:      "nsfw_flagged_total",
			Help:      "Records flagged by the NSFW classifier",
		},
		[]string{"severity"},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(ArchiveRequestDuration)
	prometheus.MustRegister(ArchiveCacheTotal)
	prometheus.MustRegister(NSFWFlaggedTotal)
}
