package component

import "fmt"

// State represents a state in the component state machine. The state machine
// provided by this package is the following:
//
//	     +--------------+
//	     | Idle         |
//	     +-+------------+
//	       |
//	     +-v------------+
//	     | Starting     +----+
//	     +-+------------+    |
//	       |                 |
//	     +-v------------+    |
//	     | Started      |    |
//	     +-+------------+    |
//	       |                 |
//	     +-v------------+  +-v------------+
//	     | Stopping     <--+ Failed       |
//	     +-+------------+  +--------------+
//	       |
//	     +-v------------+
//	     | Stopped      |
//	     +--------------+
//
// A Failed component may still be stopped, which releases whatever it had
// activated before failing. Stopping an Idle component moves it straight to
// Stopped.
type State uint8

const (
	// Idle is the initial state of a component.
	Idle State = iota
	// Starting represents a component in the process of starting.
	Starting
	// Started represents a running component.
	Started
	// Stopping represents a component in the process of stopping.
	Stopping
	// Stopped represents a component which has been stopped. It is final.
	Stopped
	// Failed represents a component whose start did not complete.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Starting:
		return "Starting"
	case Started:
		return "Started"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

var transitions = map[State][]State{
	Idle:     {Starting, Stopped},
	Starting: {Started, Failed},
	Started:  {Stopping},
	Stopping: {Stopped},
	Failed:   {Stopping},
}

// CanTransition reports whether the state machine allows moving from one
// state to another. Every state change made by the components of this package
// is checked against it. Stopping always ends Stopped, failed teardowns being
// reported by the error returned from Stop.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
