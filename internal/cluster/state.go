package cluster

// State is the connection lifecycle state of the Manager.
//
// Transitions (driven exclusively by the manager's own goroutine):
//
//	Disconnected -> Connecting   on start or after a backoff wait
//	Connecting   -> LoggingIn    on successful connect
//	LoggingIn    -> Connected    once the callsign login line is sent
//	Connected    -> Reconnecting on read error, EOF or idle timeout
//	Reconnecting -> Connecting   after the backoff delay elapses
//	any          -> Stopped      on explicit shutdown only
type State int

const (
	Disconnected State = iota
	Connecting
	LoggingIn
	Connected
	Reconnecting
	Stopped
)

var stateNames = map[State]string{
	Disconnected: "disconnected",
	Connecting:   "connecting",
	LoggingIn:    "logging_in",
	Connected:    "connected",
	Reconnecting: "reconnecting",
	Stopped:      "stopped",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
