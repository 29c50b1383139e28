// Package status aggregates the cluster session state and the cache
// fill level into one read-only snapshot for the query surface.
package status

import (
	"github.com/dxwatch/dxwatch/internal/cache"
	"github.com/dxwatch/dxwatch/internal/cluster"
)

// Status is the externally visible connection summary.
type Status struct {
	Connected     bool   `json:"connected"`
	State         string `json:"state"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	Callsign      string `json:"callsign"`
	IARURegion    int    `json:"iaru_region"`
	CachedSpots   int    `json:"cached_spots"`
	Reconnects    uint64 `json:"reconnect_attempts"`
	ParseFailures uint64 `json:"parse_failures"`
	SpotsIngested uint64 `json:"spots_ingested"`
}

// Reporter combines manager and cache reads. It holds no state of its
// own and is safe to call concurrently with ingestion.
type Reporter struct {
	cluster *cluster.Manager
	cache   *cache.SpotCache
}

// New creates a reporter over the given manager and cache.
func New(m *cluster.Manager, c *cache.SpotCache) *Reporter {
	return &Reporter{cluster: m, cache: c}
}

// Snapshot returns the current status. Pure aggregation, no mutation.
func (r *Reporter) Snapshot() Status {
	snap := r.cluster.Snapshot()
	return Status{
		Connected:     snap.State == cluster.Connected,
		State:         snap.State.String(),
		Host:          snap.Host,
		Port:          snap.Port,
		Callsign:      snap.Callsign,
		IARURegion:    int(snap.Region),
		CachedSpots:   r.cache.Len(),
		Reconnects:    snap.Reconnects,
		ParseFailures: snap.ParseFailures,
		SpotsIngested: snap.SpotsIngested,
	}
}
