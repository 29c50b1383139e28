package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dxwatch/dxwatch/internal/spot"
)

func makeSpot(i int) spot.Spot {
	return spot.Spot{
		Spotter:      "W1AW",
		DXCall:       fmt.Sprintf("JA%dXX", i),
		FrequencyKhz: 14000.0 + float64(i%350),
		Band:         "20m",
		Comment:      fmt.Sprintf("spot %d", i),
		TimeUTC:      "1234Z",
	}
}

func TestAppendNeverExceedsCapacity(t *testing.T) {
	c := New(500)
	for i := 0; i < 1500; i++ {
		c.Append(makeSpot(i))
		if c.Len() > 500 {
			t.Fatalf("cache size %d exceeds capacity after %d appends", c.Len(), i+1)
		}
	}
	if c.Len() != 500 {
		t.Errorf("Len() = %d, want 500", c.Len())
	}
}

func TestEvictionIsStrictFIFO(t *testing.T) {
	c := New(500)
	for i := 1; i <= 501; i++ {
		c.Append(makeSpot(i))
	}

	all := c.All()
	if len(all) != 500 {
		t.Fatalf("All() returned %d spots, want 500", len(all))
	}
	// The 1st spot was evicted; the oldest remaining is the 2nd.
	if all[0].Comment != "spot 2" {
		t.Errorf("oldest remaining = %q, want %q", all[0].Comment, "spot 2")
	}
	if all[499].Comment != "spot 501" {
		t.Errorf("newest = %q, want %q", all[499].Comment, "spot 501")
	}
}

func TestRecentClampsAndOrders(t *testing.T) {
	c := New(500)
	for i := 1; i <= 200; i++ {
		c.Append(makeSpot(i))
	}

	// recent(0) behaves as recent(1)
	if got := c.Recent(0); len(got) != 1 || got[0].Comment != "spot 200" {
		t.Errorf("Recent(0) = %d spots (first %v), want the single newest", len(got), got)
	}
	if got := c.Recent(-5); len(got) != 1 {
		t.Errorf("Recent(-5) returned %d spots, want 1", len(got))
	}

	// recent(1000) caps at 100
	got := c.Recent(1000)
	if len(got) != 100 {
		t.Fatalf("Recent(1000) returned %d spots, want 100", len(got))
	}
	if got[0].Comment != "spot 200" || got[99].Comment != "spot 101" {
		t.Errorf("Recent order wrong: first=%q last=%q", got[0].Comment, got[99].Comment)
	}
}

func TestRecentOnSparseCache(t *testing.T) {
	c := New(500)
	c.Append(makeSpot(1))
	c.Append(makeSpot(2))

	got := c.Recent(10)
	if len(got) != 2 {
		t.Fatalf("Recent(10) on 2-entry cache returned %d", len(got))
	}
	if got[0].Comment != "spot 2" {
		t.Errorf("newest first violated: got %q", got[0].Comment)
	}
}

func TestByCallsignMatchesDXCallOnly(t *testing.T) {
	c := New(10)
	c.Append(spot.Spot{Spotter: "JA1AA", DXCall: "W1AW", Band: "20m"})
	c.Append(spot.Spot{Spotter: "K3LR", DXCall: "ja1xxx", Band: "40m"})
	c.Append(spot.Spot{Spotter: "W2XYZ", DXCall: "OH2BH", Band: "40m"})

	got := c.ByCallsign("JA1")
	if len(got) != 1 {
		t.Fatalf("ByCallsign(JA1) returned %d spots, want 1 (spotter field must not match)", len(got))
	}
	if got[0].DXCall != "ja1xxx" {
		t.Errorf("matched %q, want ja1xxx", got[0].DXCall)
	}

	// case-insensitive both ways
	if got := c.ByCallsign("ja1XXX"); len(got) != 1 {
		t.Errorf("case-insensitive match failed, got %d results", len(got))
	}
}

func TestByFrequencyRange(t *testing.T) {
	c := New(10)
	c.Append(spot.Spot{DXCall: "A1AA", FrequencyKhz: 14000.0})
	c.Append(spot.Spot{DXCall: "B2BB", FrequencyKhz: 14200.0})
	c.Append(spot.Spot{DXCall: "C3CC", FrequencyKhz: 21000.0})

	got, err := c.ByFrequencyRange(14000.0, 14350.0)
	if err != nil {
		t.Fatalf("valid range returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d spots, want 2", len(got))
	}
	// inclusive bounds, newest first
	if got[0].DXCall != "B2BB" || got[1].DXCall != "A1AA" {
		t.Errorf("order wrong: %v %v", got[0].DXCall, got[1].DXCall)
	}
}

func TestByFrequencyRangeValidation(t *testing.T) {
	c := New(10)

	_, err := c.ByFrequencyRange(14200.0, 14000.0)
	if err == nil {
		t.Fatal("min > max must be a validation error, not an empty result")
	}
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("error %v is not ErrInvalidQuery", err)
	}

	if _, err := c.ByFrequencyRange(0, 14000.0); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("non-positive min must be a validation error, got %v", err)
	}
}

func TestByBand(t *testing.T) {
	c := New(10)
	c.Append(spot.Spot{DXCall: "A1AA", Band: "20m"})
	c.Append(spot.Spot{DXCall: "B2BB", Band: "40m"})
	c.Append(spot.Spot{DXCall: "C3CC", Band: "unknown"})

	got, err := c.ByBand("20M")
	if err != nil {
		t.Fatalf("ByBand(20M) error: %v", err)
	}
	if len(got) != 1 || got[0].DXCall != "A1AA" {
		t.Errorf("ByBand(20M) = %v", got)
	}

	// unknown-banded spots only match a query for "unknown"
	got, err = c.ByBand("unknown")
	if err != nil {
		t.Fatalf("ByBand(unknown) error: %v", err)
	}
	if len(got) != 1 || got[0].DXCall != "C3CC" {
		t.Errorf("ByBand(unknown) = %v", got)
	}

	if _, err := c.ByBand("11m"); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("unrecognized band label must be a validation error, got %v", err)
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	c := New(10)
	c.Append(makeSpot(1))

	first := c.All()
	c.Append(makeSpot(2))

	if len(first) != 1 {
		t.Errorf("earlier snapshot changed length after append: %d", len(first))
	}
	if first[0].Comment != "spot 1" {
		t.Errorf("earlier snapshot mutated: %q", first[0].Comment)
	}
}

func TestConcurrentReadsDuringAppend(t *testing.T) {
	c := New(100)
	done := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				c.Append(makeSpot(i))
			}
		}
	}()

	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for i := 0; i < 500; i++ {
				if got := c.Recent(50); len(got) > 50 {
					t.Errorf("Recent returned %d > 50", len(got))
					return
				}
				if _, err := c.ByFrequencyRange(14000, 15000); err != nil {
					t.Errorf("unexpected query error: %v", err)
					return
				}
				_ = c.ByCallsign("JA")
			}
		}()
	}

	readers.Wait()
	close(done)
	<-writerDone
}
