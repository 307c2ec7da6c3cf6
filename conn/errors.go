package conn

import (
	"errors"
	"fmt"

	"github.com/dynamitemc/froglight/protocol/packet"
)

var (
	ErrResolve          = errors.New("resolve failed")
	ErrDial             = errors.New("dial failed")
	ErrUnexpectedPacket = errors.New("unexpected packet")
	ErrClosed           = errors.New("connection closed")
	ErrBroken           = errors.New("connection broken")

	ErrFrameTooLarge   = errors.New("frame too large")
	ErrEmptyFrame      = errors.New("empty frame")
	ErrBadCompression  = errors.New("bad compressed frame")
	ErrTrailingBytes   = errors.New("trailing bytes after packet")
	ErrEncryptionState = errors.New("encryption already enabled")
)

// ConnectionError describes a failed connection operation. Kind is one of
// the Err* values of this package and Err the underlying cause, if any.
type ConnectionError struct {
	Op   string
	Addr string
	Kind error
	Err  error
}

func (e *ConnectionError) Error() string {
	s := "conn: " + e.Op
	if e.Addr != "" {
		s += " " + e.Addr
	}
	s += ": " + e.Kind.Error()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ConnectionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// TransitionError is returned for a state change the protocol does not
// allow.
type TransitionError struct {
	From, To packet.State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("conn: illegal transition %s -> %s", e.From, e.To)
}
