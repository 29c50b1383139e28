package bandplan

import "strings"

// Region is an IARU radio regulatory region (1, 2 or 3).
// Band edges differ between regions, so every frequency lookup is
// region-qualified.
type Region int

const (
	Region1 Region = 1
	Region2 Region = 2
	Region3 Region = 3
)

// Valid reports whether r is one of the three IARU regions.
func (r Region) Valid() bool {
	return r == Region1 || r == Region2 || r == Region3
}

// Unknown is the label returned for frequencies outside every band of
// the region. It is a valid query label: cached spots that fell outside
// the band plan carry it.
const Unknown = "unknown"

// BandRange is one inclusive [Low, High] kHz allocation.
type BandRange struct {
	Label string
	Low   float64
	High  float64
}

// Ranges are ordered by frequency and non-overlapping within a region.
// Values follow the IARU region band plans (HF + 6m/2m).
var region1 = []BandRange{
	{"160m", 1810.0, 2000.0},
	{"80m", 3500.0, 3800.0},
	{"60m", 5351.5, 5366.5},
	{"40m", 7000.0, 7200.0},
	{"30m", 10100.0, 10150.0},
	{"20m", 14000.0, 14350.0},
	{"17m", 18068.0, 18168.0},
	{"15m", 21000.0, 21450.0},
	{"12m", 24890.0, 24990.0},
	{"10m", 28000.0, 29700.0},
	{"6m", 50000.0, 52000.0},
	{"2m", 144000.0, 146000.0},
}

var region2 = []BandRange{
	{"160m", 1800.0, 2000.0},
	{"80m", 3500.0, 4000.0},
	{"60m", 5330.5, 5403.5},
	{"40m", 7000.0, 7300.0},
	{"30m", 10100.0, 10150.0},
	{"20m", 14000.0, 14350.0},
	{"17m", 18068.0, 18168.0},
	{"15m", 21000.0, 21450.0},
	{"12m", 24890.0, 24990.0},
	{"10m", 28000.0, 29700.0},
	{"6m", 50000.0, 54000.0},
	{"2m", 144000.0, 148000.0},
}

var region3 = []BandRange{
	{"160m", 1800.0, 2000.0},
	{"80m", 3500.0, 3900.0},
	{"60m", 5351.5, 5366.5},
	{"40m", 7000.0, 7200.0},
	{"30m", 10100.0, 10150.0},
	{"20m", 14000.0, 14350.0},
	{"17m", 18068.0, 18168.0},
	{"15m", 21000.0, 21450.0},
	{"12m", 24890.0, 24990.0},
	{"10m", 28000.0, 29700.0},
	{"6m", 50000.0, 54000.0},
	{"2m", 144000.0, 146000.0},
}

var plans = map[Region][]BandRange{
	Region1: region1,
	Region2: region2,
	Region3: region3,
}

// BandFor returns the canonical band label for a frequency in kHz, or
// Unknown when the frequency falls outside every allocation of the
// region. Pure lookup, no error path.
func BandFor(freqKhz float64, region Region) string {
	ranges, ok := plans[region]
	if !ok {
		return Unknown
	}
	for _, r := range ranges {
		if r.Low > freqKhz {
			break // ranges are sorted, no later range can match
		}
		if freqKhz <= r.High {
			return r.Label
		}
	}
	return Unknown
}

// Ranges returns the band plan for a region, ordered by frequency.
// The returned slice is shared and must not be mutated.
func Ranges(region Region) []BandRange {
	return plans[region]
}

// Labels returns the canonical band labels (same set in every region).
func Labels() []string {
	labels := make([]string, 0, len(region2))
	for _, r := range region2 {
		labels = append(labels, r.Label)
	}
	return labels
}

// ValidLabel reports whether label names a known band (case-insensitive).
// Unknown is accepted: it is how unclassified spots are queried.
func ValidLabel(label string) bool {
	label = strings.ToLower(label)
	if label == Unknown {
		return true
	}
	for _, r := range region2 {
		if r.Label == label {
			return true
		}
	}
	return false
}
