package conn

import (
	"context"
	"sync"

	"github.com/dynamitemc/froglight/protocol/packet"
)

// Received is one result of the receive loop. Err is set on the last
// value before the channel closes.
type Received struct {
	Packet packet.Packet
	Err    error
}

type outgoing struct {
	p    packet.Packet
	done chan error
}

// Session drives a Conn from two goroutines: one reads and decodes frames
// into a bounded inbound channel, the other writes packets taken from a
// bounded outbound channel. State changes must be automatic (see
// WithTransitions), since the receive loop reads ahead.
type Session struct {
	conn *Conn
	in   chan Received
	out  chan outgoing

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewSession starts the loops. Queue sizes below one are raised to one.
func NewSession(c *Conn, inbound, outbound int) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		conn:   c,
		in:     make(chan Received, max(inbound, 1)),
		out:    make(chan outgoing, max(outbound, 1)),
		ctx:    ctx,
		cancel: cancel,
	}
	s.wg.Add(2)
	go s.receive()
	go s.send()
	return s
}

func (s *Session) Conn() *Conn { return s.conn }

// Incoming yields received packets. It is closed after an error or Close.
func (s *Session) Incoming() <-chan Received { return s.in }

// Done is closed when the session is shut down.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Session) receive() {
	defer s.wg.Done()
	defer close(s.in)
	for {
		p, err := s.conn.Read.Recv()
		select {
		case s.in <- Received{Packet: p, Err: err}:
		case <-s.ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) send() {
	defer s.wg.Done()
	for {
		select {
		case o := <-s.out:
			o.done <- s.conn.Write.Send(o.p)
		case <-s.ctx.Done():
			return
		}
	}
}

// Send queues p and waits until it is written. It blocks while the queue
// is full and gives up when ctx is done or the session is closed.
func (s *Session) Send(ctx context.Context, p packet.Packet) error {
	o := outgoing{p: p, done: make(chan error, 1)}
	select {
	case s.out <- o:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return &ConnectionError{Op: "send", Addr: s.conn.shared.peer, Kind: ErrClosed}
	}
	select {
	case err := <-o.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return &ConnectionError{Op: "send", Addr: s.conn.shared.peer, Kind: ErrClosed}
	}
}

// Close stops both loops and closes the connection.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.conn.Close()
		s.wg.Wait()
	})
	return err
}
