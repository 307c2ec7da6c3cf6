package packet

import "fmt"

// State is the protocol phase, which decides the packet set in use.
type State uint8

const (
	Handshake State = iota
	Status
	Login
	Configuration
	Play
)

var States = [...]State{Handshake, Status, Login, Configuration, Play}

func (s State) String() string {
	switch s {
	case Handshake:
		return "handshake"
	case Status:
		return "status"
	case Login:
		return "login"
	case Configuration:
		return "configuration"
	case Play:
		return "play"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// CanTransition reports whether a connection may move from one state to
// another:
//
//	handshake -> status
//	handshake -> login -> configuration <-> play
func CanTransition(from, to State) bool {
	switch from {
	case Handshake:
		return to == Status || to == Login
	case Login:
		return to == Configuration
	case Configuration:
		return to == Play
	case Play:
		return to == Configuration
	default:
		return false
	}
}

// Intent is the next state requested by the handshake.
type Intent int32

const (
	IntentStatus   Intent = 1
	IntentLogin    Intent = 2
	IntentTransfer Intent = 3
)

// State returns the state the connection enters after a handshake with
// this intent.
func (i Intent) State() (State, bool) {
	switch i {
	case IntentStatus:
		return Status, true
	case IntentLogin, IntentTransfer:
		return Login, true
	default:
		return Handshake, false
	}
}
