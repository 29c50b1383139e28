// Package metrics holds the process-wide Prometheus collectors.
// They are registered on the default registry and served by the
// /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SpotsIngested counts successfully parsed and cached spot lines.
	SpotsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dxwatch",
		Name:      "spots_ingested_total",
		Help:      "Number of spot lines parsed and appended to the cache.",
	})

	// ParseFailures counts dropped lines, by failure reason.
	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dxwatch",
		Name:      "parse_failures_total",
		Help:      "Number of cluster lines that failed spot parsing.",
	}, []string{"reason"})

	// Reconnects counts reconnection attempts against the cluster.
	Reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dxwatch",
		Name:      "reconnects_total",
		Help:      "Number of reconnection attempts to the DX cluster.",
	})

	// CacheSize tracks the number of spots currently cached.
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dxwatch",
		Name:      "cache_size",
		Help:      "Number of spots currently held in the cache.",
	})

	// Connected is 1 while a live cluster session is established.
	Connected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dxwatch",
		Name:      "cluster_connected",
		Help:      "1 when connected to the DX cluster, 0 otherwise.",
	})
)
