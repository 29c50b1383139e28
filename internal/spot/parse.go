package spot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dxwatch/dxwatch/internal/bandplan"
)

// Reason classifies why a line did not yield a spot.
type Reason string

const (
	// ReasonNotASpot marks lines that are not spot announcements at
	// all: banners, login prompts, talk messages, WWV broadcasts.
	ReasonNotASpot Reason = "not-a-spot"

	// ReasonMalformedFrequency marks spot-shaped lines whose frequency
	// token does not parse to a positive kHz value.
	ReasonMalformedFrequency Reason = "malformed-frequency"

	// ReasonMalformedTime marks spot-shaped lines whose trailing token
	// is not a 4-digit HHMM time (optionally zone-suffixed).
	ReasonMalformedTime Reason = "malformed-time"
)

// ParseError is the failure half of the Parse result. It never escapes
// the ingestion loop as a hard failure: callers drop the line, count it
// and continue.
type ParseError struct {
	Reason Reason
	Line   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("spot parse failed (%s): %q", e.Reason, e.Line)
}

// Parse turns one cluster output line (already stripped of CR/LF) into
// a Spot, deriving the band from the given region.
//
// The canonical shape is
//
//	DX de W1AW:    14195.0  JA1XXX       CQ CQ DX               1234Z
//
// but column alignment varies between cluster software, so fields are
// found by token shape rather than offset: introducer, spotter
// callsign (trailing colon optional), numeric frequency in kHz, DX
// callsign, free-text comment, trailing HHMM time with optional zone
// marker. Parse is total and deterministic: every input yields exactly
// one Spot or one *ParseError.
func Parse(line string, region bandplan.Region) (Spot, error) {
	fields := strings.Fields(line)

	// "DX" "de" spotter freq dxcall [comment...] time
	if len(fields) < 6 ||
		!strings.EqualFold(fields[0], "DX") ||
		!strings.EqualFold(fields[1], "de") {
		return Spot{}, &ParseError{Reason: ReasonNotASpot, Line: line}
	}

	spotter := strings.TrimSuffix(fields[2], ":")
	if !validCallsign(spotter) {
		return Spot{}, &ParseError{Reason: ReasonNotASpot, Line: line}
	}

	dxCall := fields[4]
	if !validCallsign(dxCall) {
		return Spot{}, &ParseError{Reason: ReasonNotASpot, Line: line}
	}

	freq, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || freq <= 0 {
		return Spot{}, &ParseError{Reason: ReasonMalformedFrequency, Line: line}
	}

	timeTok := fields[len(fields)-1]
	if !validTime(timeTok) {
		return Spot{}, &ParseError{Reason: ReasonMalformedTime, Line: line}
	}

	return Spot{
		Spotter:      strings.ToUpper(spotter),
		DXCall:       strings.ToUpper(dxCall),
		FrequencyKhz: freq,
		Band:         bandplan.BandFor(freq, region),
		Comment:      strings.Join(fields[5:len(fields)-1], " "),
		TimeUTC:      strings.ToUpper(timeTok),
	}, nil
}

// validCallsign applies a deliberately loose callsign grammar: at least
// three characters, letters and digits with optional portable suffixes
// ("/P", "/QRP"), containing at least one letter and one digit.
// Clusters relay callsigns verbatim, so stricter ITU format checks
// would drop legitimate traffic.
func validCallsign(s string) bool {
	if len(s) < 3 || len(s) > 12 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '/' || c == '-' || c == '#':
			// portable suffixes, SSID separators, skimmer markers
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// validTime accepts HHMM with an optional single trailing zone letter.
func validTime(s string) bool {
	if len(s) == 5 {
		last := s[4]
		if !(last >= 'A' && last <= 'Z' || last >= 'a' && last <= 'z') {
			return false
		}
		s = s[:4]
	}
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
