package cache

import (
	"strings"
	"sync"

	"github.com/dxwatch/dxwatch/internal/bandplan"
	"github.com/dxwatch/dxwatch/internal/spot"
)

const (
	// DefaultCapacity bounds the retained history.
	DefaultCapacity = 500

	// MaxRecent caps how many entries a single Recent call may return.
	MaxRecent = 100
)

// SpotCache is the bounded FIFO store of parsed spots.
//
// Exactly one goroutine (the cluster read loop) appends; any number of
// query callers read concurrently. Reads copy a frozen snapshot under
// the read lock and filter outside it, so an append during iteration is
// never observable as a torn result.
type SpotCache struct {
	mu    sync.RWMutex
	buf   []spot.Spot // ring buffer, len == capacity once full
	head  int         // index of the oldest entry
	size  int
	limit int
}

// New creates a cache bounded to capacity entries. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *SpotCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SpotCache{
		buf:   make([]spot.Spot, capacity),
		limit: capacity,
	}
}

// Append inserts s at the newest end, evicting exactly the single
// oldest entry when the cache is full. O(1).
func (c *SpotCache) Append(s spot.Spot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.size < c.limit {
		c.buf[(c.head+c.size)%c.limit] = s
		c.size++
		return
	}
	// Full: overwrite the oldest slot and advance the head.
	c.buf[c.head] = s
	c.head = (c.head + 1) % c.limit
}

// Len returns the number of cached spots.
func (c *SpotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// snapshot copies the current contents oldest-first. Callers filter the
// copy without holding any lock.
func (c *SpotCache) snapshot() []spot.Spot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]spot.Spot, c.size)
	for i := 0; i < c.size; i++ {
		out[i] = c.buf[(c.head+i)%c.limit]
	}
	return out
}

// All returns every cached spot, oldest first.
func (c *SpotCache) All() []spot.Spot {
	return c.snapshot()
}

// Recent returns up to n spots, newest first. n is clamped to
// [1, MaxRecent] regardless of the caller-supplied value.
func (c *SpotCache) Recent(n int) []spot.Spot {
	if n < 1 {
		n = 1
	}
	if n > MaxRecent {
		n = MaxRecent
	}

	all := c.snapshot()
	if n > len(all) {
		n = len(all)
	}

	out := make([]spot.Spot, 0, n)
	for i := len(all) - 1; i >= len(all)-n; i-- {
		out = append(out, all[i])
	}
	return out
}

// ByCallsign returns spots whose DX callsign contains substr
// (case-insensitive), newest first. The spotter field is not searched.
func (c *SpotCache) ByCallsign(substr string) []spot.Spot {
	needle := strings.ToUpper(strings.TrimSpace(substr))

	all := c.snapshot()
	out := make([]spot.Spot, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToUpper(all[i].DXCall), needle) {
			out = append(out, all[i])
		}
	}
	return out
}

// ByFrequencyRange returns spots with minKhz <= frequency <= maxKhz,
// newest first. An inverted or non-positive range is a caller error,
// reported distinctly so "bad request" is never mistaken for
// "no matches".
func (c *SpotCache) ByFrequencyRange(minKhz, maxKhz float64) ([]spot.Spot, error) {
	if minKhz <= 0 {
		return nil, &QueryError{Field: "min_khz", Detail: "must be positive"}
	}
	if minKhz > maxKhz {
		return nil, &QueryError{Field: "min_khz", Detail: "greater than max_khz"}
	}

	all := c.snapshot()
	out := make([]spot.Spot, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if f := all[i].FrequencyKhz; f >= minKhz && f <= maxKhz {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// ByBand returns spots whose stored band label matches label
// (case-insensitive), newest first. Spots outside the band plan only
// match a query for "unknown". An unrecognized label is a caller error.
func (c *SpotCache) ByBand(label string) ([]spot.Spot, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if !bandplan.ValidLabel(label) {
		return nil, &QueryError{Field: "band", Detail: "unrecognized band label"}
	}

	all := c.snapshot()
	out := make([]spot.Spot, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if strings.EqualFold(all[i].Band, label) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
