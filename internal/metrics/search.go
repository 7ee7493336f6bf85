package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mythopedia",
			Name:      "search_duration_seconds",
			Help:      "Search execution time (cache misses only)",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mythopedia",
			Name:      "searches_total",
			Help:      "Total searches by cache outcome and result presence",
		},
		[]string{"cache", "results"},
	)

	indexEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mythopedia",
			Name:      "index_entries",
			Help:      "Number of entries in the current search index snapshot",
		},
	)

	rebuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mythopedia",
			Name:      "index_rebuilds_total",
			Help:      "Index rebuilds by outcome",
		},
		[]string{"status"},
	)

	rebuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mythopedia",
			Name:      "index_rebuild_duration_seconds",
			Help:      "Index rebuild time including the content store read",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

func init() {
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(searchesTotal)
	prometheus.MustRegister(indexEntries)
	prometheus.MustRegister(rebuildsTotal)
	prometheus.MustRegister(rebuildDuration)
}

// ObserveSearch records one completed search. Duration is only observed for
// cache misses; hits skip the scoring pass entirely.
func ObserveSearch(cacheHit, zeroResults bool, took time.Duration) {
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	results := "some"
	if zeroResults {
		results = "none"
	}
	searchesTotal.WithLabelValues(cache, results).Inc()
	if !cacheHit {
		searchDuration.Observe(took.Seconds())
	}
}

// ObserveRebuild records one index rebuild attempt.
func ObserveRebuild(ok bool, took time.Duration) {
	status := "error"
	if ok {
		status = "ok"
	}
	rebuildsTotal.WithLabelValues(status).Inc()
	if ok {
		rebuildDuration.Observe(took.Seconds())
	}
}

// SetIndexEntries updates the index size gauge after a successful rebuild.
func SetIndexEntries(n int) {
	indexEntries.Set(float64(n))
}
