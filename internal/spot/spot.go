package spot

import "fmt"

// Spot is one observed DX sighting as announced by the cluster.
//
// It is a value type: constructed once by a successful parse and never
// mutated afterwards. The band label reflects the IARU region that was
// configured when the line was ingested; reclassification does not
// happen retroactively.
type Spot struct {
	// Spotter is the callsign of the station reporting the contact.
	Spotter string `json:"spotter"`

	// DXCall is the callsign of the spotted (DX) station.
	DXCall string `json:"dx_call"`

	// FrequencyKhz is the reported frequency in kHz.
	FrequencyKhz float64 `json:"frequency_khz"`

	// Band is the canonical band label derived at ingestion time,
	// or "unknown" when the frequency is outside the band plan.
	Band string `json:"band"`

	// Comment is the free-text remainder of the line, often carrying
	// mode and signal report. May be empty.
	Comment string `json:"comment"`

	// TimeUTC is the cluster-local time-of-day token, HHMM with an
	// optional trailing zone marker (e.g. "1234Z"). Not date-qualified.
	TimeUTC string `json:"time_utc"`
}

// String renders the spot the way cluster users read it.
func (s Spot) String() string {
	if s.Comment == "" {
		return fmt.Sprintf("%s on %.1f kHz (%s) spotted by %s at %s",
			s.DXCall, s.FrequencyKhz, s.Band, s.Spotter, s.TimeUTC)
	}
	return fmt.Sprintf("%s on %.1f kHz (%s) spotted by %s at %s - %s",
		s.DXCall, s.FrequencyKhz, s.Band, s.Spotter, s.TimeUTC, s.Comment)
}
