// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DiscoveryQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_queries_total",
			Help: "Total number of discovery queries by operation",
		},
		[]string{"operation"},
	)

	DiscoveryQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_query_errors_total",
			Help: "Total number of failed discovery queries by operation and error code",
		},
		[]string{"operation", "error_code"},
	)

	DiscoveryQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "discovery_query_duration_seconds",
			Help: "Duration of discovery query processing in seconds",
		},
		[]string{"operation"},
	)

	MalformedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_malformed_records_total",
			Help: "Total number of catalog records excluded for failing shape validation",
		},
		[]string{"source"},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_catalog_cache_hits_total",
			Help: "Catalog cache lookups by outcome (hit, miss, error)",
		},
		[]string{"outcome"},
	)
)
