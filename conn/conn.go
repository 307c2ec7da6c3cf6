// Package conn is a framed, optionally compressed and encrypted Minecraft
// connection that tracks the protocol state and refuses packets that do
// not belong to it.
package conn

import (
	"bufio"
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Tnze/go-mc/net/CFB8"
	"github.com/dynamitemc/froglight/logger"
	"github.com/dynamitemc/froglight/protocol/packet"
	"github.com/google/uuid"
)

// Transitions reports the state a half moves to once packet p has been
// sent or received on it, such as Configuration after login_finished.
type Transitions func(p packet.Packet) (packet.State, bool)

type options struct {
	resolver    Resolver
	dialer      *net.Dialer
	log         *logger.Logger
	metrics     *Metrics
	transitions Transitions
}

type Option func(*options)

func WithResolver(r Resolver) Option { return func(o *options) { o.resolver = r } }

func WithDialer(d *net.Dialer) Option { return func(o *options) { o.dialer = d } }

func WithLogger(l *logger.Logger) Option { return func(o *options) { o.log = l } }

func WithMetrics(m *Metrics) Option { return func(o *options) { o.metrics = m } }

// WithTransitions makes each half change state by itself after the packets
// that end a state. Without it the caller uses the Into methods.
func WithTransitions(t Transitions) Option { return func(o *options) { o.transitions = t } }

// fault holds the first error seen on a connection.
type fault struct {
	mu  sync.Mutex
	err error
}

func (f *fault) set(err error) {
	f.mu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.mu.Unlock()
}

func (f *fault) get() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// stateCell is the protocol state of one half.
type stateCell struct {
	v atomic.Uint32
}

func (c *stateCell) load() packet.State   { return packet.State(c.v.Load()) }
func (c *stateCell) store(s packet.State) { c.v.Store(uint32(s)) }

// shared is what both halves of a connection hold.
type shared struct {
	socket    net.Conn
	role      packet.Role
	version   packet.Version
	threshold *Threshold
	fault     fault
	closed    chan struct{}
	closeOnce sync.Once
	log       *logger.Logger
	metrics   *Metrics
	next      Transitions
	peer      string
	encrypted bool
	read      stateCell
	write     stateCell
}

func (s *shared) broken(op string) error {
	err := s.fault.get()
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrClosed) {
		return &ConnectionError{Op: op, Addr: s.peer, Kind: ErrClosed}
	}
	return &ConnectionError{Op: op, Addr: s.peer, Kind: ErrBroken, Err: err}
}

// breakWith records err as the connection's fault and returns it.
func (s *shared) breakWith(op string, err error) error {
	select {
	case <-s.closed:
		s.fault.set(ErrClosed)
		return &ConnectionError{Op: op, Addr: s.peer, Kind: ErrClosed}
	default:
	}
	s.fault.set(err)
	s.metrics.failed(op)
	return err
}

// advance applies the automatic transition that follows p on the half
// whose state is self. Leaving the handshake moves the other half as well,
// since the handshake has no packets in the opposite direction.
func (s *shared) advance(self, other *stateCell, p packet.Packet) error {
	if s.next == nil {
		return nil
	}
	to, ok := s.next(p)
	if !ok {
		return nil
	}
	from := self.load()
	if !packet.CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	self.store(to)
	if from == packet.Handshake {
		other.v.CompareAndSwap(uint32(packet.Handshake), uint32(to))
	}
	return nil
}

func (s *shared) arrow(sending bool) string {
	self := "Client"
	if s.role == packet.Server {
		self = "Server"
	}
	if sending {
		return fmt.Sprintf("(%s -> [%s])", self, s.peer)
	}
	return fmt.Sprintf("([%s] -> %s)", s.peer, self)
}

// ReadHalf receives packets. It may be used from a different goroutine
// than the WriteHalf.
type ReadHalf struct {
	*shared
	mu     sync.Mutex
	frames frameReader
	src    io.Reader
}

// WriteHalf sends packets.
type WriteHalf struct {
	*shared
	mu     sync.Mutex
	dst    io.Writer
	frames frameWriter
	buf    bytes.Buffer
}

// Conn is a connection of a given role speaking one protocol version.
type Conn struct {
	Read  *ReadHalf
	Write *WriteHalf

	shared *shared
	// Addr is the resolved address for connections made by Connect.
	Addr Address

	profileMu sync.Mutex
	name      string
	id        uuid.UUID
}

// Connect resolves and dials address and returns a client connection in
// the handshake state.
func Connect(ctx context.Context, address string, version packet.Version, opts ...Option) (*Conn, error) {
	o := options{dialer: new(net.Dialer)}
	for _, opt := range opts {
		opt(&o)
	}
	addr, err := Resolve(ctx, o.resolver, address)
	if err != nil {
		o.metrics.failed("resolve")
		return nil, err
	}
	o.log.Debug("[TCP] Resolved %s to %s", address, addr)
	socket, err := o.dialer.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		o.metrics.failed("dial")
		return nil, &ConnectionError{Op: "dial", Addr: addr.String(), Kind: ErrDial, Err: err}
	}
	c := newConn(socket, packet.Client, version, o)
	c.Addr = addr
	return c, nil
}

// NewConn wraps an established socket, typically one accepted by a
// server.
func NewConn(socket net.Conn, role packet.Role, version packet.Version, opts ...Option) *Conn {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newConn(socket, role, version, o)
}

func newConn(socket net.Conn, role packet.Role, version packet.Version, o options) *Conn {
	s := &shared{
		socket:    socket,
		role:      role,
		version:   version,
		threshold: NewThreshold(),
		closed:    make(chan struct{}),
		log:       o.log,
		metrics:   o.metrics,
		next:      o.transitions,
		peer:      socket.RemoteAddr().String(),
	}
	s.metrics.opened()
	return &Conn{
		shared: s,
		Read: &ReadHalf{
			shared: s,
			src:    socket,
			frames: frameReader{r: bufio.NewReader(socket)},
		},
		Write: &WriteHalf{shared: s, dst: socket},
	}
}

func (c *Conn) Role() packet.Role             { return c.shared.role }
func (c *Conn) Version() packet.Version       { return c.shared.version }
func (c *Conn) Threshold() *Threshold         { return c.shared.threshold }
func (c *Conn) RemoteAddr() net.Addr          { return c.shared.socket.RemoteAddr() }
func (c *Conn) SetDeadline(t time.Time) error { return c.shared.socket.SetDeadline(t) }

// SetProfile records the account the connection is logged in as.
func (c *Conn) SetProfile(name string, id uuid.UUID) {
	c.profileMu.Lock()
	c.name, c.id = name, id
	c.profileMu.Unlock()
}

func (c *Conn) Profile() (name string, id uuid.UUID) {
	c.profileMu.Lock()
	defer c.profileMu.Unlock()
	return c.name, c.id
}

// State returns the state of the read and write halves. They differ only
// between a state-ending packet and its acknowledgement.
func (c *Conn) State() (read, write packet.State) {
	return c.Read.State(), c.Write.State()
}

func (c *Conn) Send(p packet.Packet) error     { return c.Write.Send(p) }
func (c *Conn) Recv() (packet.Packet, error)   { return c.Read.Recv() }
func (c *Conn) SetCompression(threshold int32) { c.shared.threshold.Store(threshold) }
func (c *Conn) IntoStatus() error              { return c.into(packet.Status) }
func (c *Conn) IntoLogin() error               { return c.into(packet.Login) }
func (c *Conn) IntoConfig() error              { return c.into(packet.Configuration) }
func (c *Conn) IntoPlay() error                { return c.into(packet.Play) }

// into moves both halves, or neither when either move is illegal. It must
// not race with traffic on the connection.
func (c *Conn) into(to packet.State) error {
	s := c.shared
	for _, from := range []packet.State{s.read.load(), s.write.load()} {
		if !packet.CanTransition(from, to) {
			return &TransitionError{From: from, To: to}
		}
	}
	s.read.store(to)
	s.write.store(to)
	return nil
}

// EnableEncryption switches both directions to AES/CFB8 keyed with the
// shared secret, which is also the IV.
func (c *Conn) EnableEncryption(secret []byte) error {
	c.Read.mu.Lock()
	defer c.Read.mu.Unlock()
	c.Write.mu.Lock()
	defer c.Write.mu.Unlock()
	if c.shared.encrypted {
		return ErrEncryptionState
	}
	block, err := aes.NewCipher(secret)
	if err != nil {
		return err
	}
	c.Write.dst = cipher.StreamWriter{S: CFB8.NewCFB8Encrypt(block, secret), W: c.shared.socket}

	// Bytes already buffered arrived after the switch on the peer's side,
	// so they are decrypted with the same stream as the socket.
	buffered, _ := c.Read.frames.r.Peek(c.Read.frames.r.Buffered())
	rest := io.MultiReader(bytes.NewReader(append([]byte(nil), buffered...)), c.shared.socket)
	c.Read.src = cipher.StreamReader{S: CFB8.NewCFB8Decrypt(block, secret), R: rest}
	c.Read.frames.r = bufio.NewReader(c.Read.src)
	c.shared.encrypted = true
	c.shared.log.Debug("[TCP] Encryption enabled for [%s]", c.shared.peer)
	return nil
}

// Close closes the socket. Pending and later operations fail with
// ErrClosed.
func (c *Conn) Close() error {
	var err error
	c.shared.closeOnce.Do(func() {
		close(c.shared.closed)
		c.shared.fault.set(ErrClosed)
		c.shared.metrics.closed()
		err = c.shared.socket.Close()
	})
	return err
}

func (h *ReadHalf) State() packet.State { return h.read.load() }

// Into moves the read half alone to another state.
func (h *ReadHalf) Into(to packet.State) error { return into(&h.read, to) }

func into(cell *stateCell, to packet.State) error {
	from := cell.load()
	if !packet.CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	cell.store(to)
	return nil
}

// Recv reads and decodes the next packet of the current state. Any error
// breaks the connection.
func (h *ReadHalf) Recv() (packet.Packet, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.broken("recv"); err != nil {
		return nil, err
	}

	payload, wire, compressed, err := h.frames.read(h.threshold.Load())
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = &ConnectionError{Op: "recv", Addr: h.peer, Kind: ErrClosed, Err: err}
		}
		return nil, h.breakWith("recv", err)
	}
	state := h.read.load()
	set := h.version.Packets(state, h.role.Recv())
	r := bytes.NewReader(payload)
	p, _, err := set.Decode(r)
	if err != nil {
		return nil, h.breakWith("recv", err)
	}
	if r.Len() > 0 {
		err := fmt.Errorf("%w: %d after %s in %s", ErrTrailingBytes, r.Len(), set.Name(p), set)
		return nil, h.breakWith("recv", err)
	}
	h.metrics.received(state.String(), wire, compressed)
	h.log.Debug("[TCP] %s Sent %s packet", h.arrow(false), set.Name(p))

	if err := h.advance(&h.read, &h.write, p); err != nil {
		return nil, h.breakWith("recv", err)
	}
	return p, nil
}

func (h *WriteHalf) State() packet.State { return h.write.load() }

// Into moves the write half alone to another state.
func (h *WriteHalf) Into(to packet.State) error { return into(&h.write, to) }

// Send encodes p and writes it as one frame. A packet of another state or
// direction is refused without touching the connection; a write error
// breaks it.
func (h *WriteHalf) Send(p packet.Packet) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.broken("send"); err != nil {
		return err
	}
	state := h.write.load()
	set := h.version.Packets(state, h.role.Send())
	if !set.Contains(p) {
		return &ConnectionError{Op: "send", Addr: h.peer, Kind: ErrUnexpectedPacket, Err: fmt.Errorf("%T in %s", p, set)}
	}

	h.buf.Reset()
	if _, err := set.Encode(&h.buf, p); err != nil {
		// Nothing was written; the connection is still usable.
		return err
	}
	frame, compressed, err := h.frames.build(h.buf.Bytes(), h.threshold.Load())
	if err != nil {
		return err
	}
	if _, err := h.dst.Write(frame); err != nil {
		return h.breakWith("send", err)
	}
	h.metrics.sent(state.String(), len(frame), compressed)
	h.log.Debug("[TCP] %s Sent %s packet", h.arrow(true), set.Name(p))

	if err := h.advance(&h.write, &h.read, p); err != nil {
		return h.breakWith("send", err)
	}
	return nil
}
