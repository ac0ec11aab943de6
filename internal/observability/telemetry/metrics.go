package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	ChatQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mandi_chat_queries_total",
		Help: "Total chat queries processed, by classified topic",
	}, []string{"topic"})

	VoiceResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mandi_voice_resolutions_total",
		Help: "Total voice command resolutions, by intent and status",
	}, []string{"intent", "status"})

	ResolutionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mandi_resolution_latency_seconds",
		Help:    "Latency of voice command resolution",
		Buckets: prometheus.DefBuckets,
	})

	VendorSearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mandi_vendor_searches_total",
		Help: "Total vendor proximity searches served",
	})

	// Infrastructure metrics
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mandi_database_latency_seconds",
		Help:    "Latency of directory and price store queries",
		Buckets: prometheus.DefBuckets,
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mandi_cache_hits_total",
		Help: "Vendor directory cache lookups, by outcome",
	}, []string{"outcome"})
)
