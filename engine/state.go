package engine

import "fmt"

// State is the frame loop state. The only transition is Running -> Closed
type State int

const (
	StateRunning State = iota
	StateClosed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
