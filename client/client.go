// Package client joins Minecraft servers speaking protocol 769. It answers
// the keep-alive and configuration traffic a vanilla client would, and
// mirrors the chunks it receives into a level.World.
package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/dynamitemc/froglight/config"
	"github.com/dynamitemc/froglight/conn"
	"github.com/dynamitemc/froglight/level"
	"github.com/dynamitemc/froglight/logger"
	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/dynamitemc/froglight/protocol/packet"
	"github.com/dynamitemc/froglight/protocol/v769"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dynamitemc/froglight/client"

var (
	ErrUnexpectedPacket = errors.New("client: unexpected packet")
	ErrPingMismatch     = errors.New("client: pong does not match ping")
	ErrNotJoined        = errors.New("client: not joined")
	ErrAuthRequired     = errors.New("client: server requires authentication")
)

// DisconnectError is returned when the server ends the connection with a
// reason.
type DisconnectError struct {
	State  packet.State
	Reason string
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("client: disconnected during %s: %s", e.State, e.Reason)
}

// TransferError is returned when the server sends the client to another
// server.
type TransferError struct {
	Host string
	Port int
}

func (e *TransferError) Error() string {
	return "client: transferred to " + net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

type Option func(*Client)

func WithLogger(l *logger.Logger) Option { return func(c *Client) { c.log = l } }

func WithMetrics(m *conn.Metrics) Option { return func(c *Client) { c.metrics = m } }

func WithResolver(r conn.Resolver) Option { return func(c *Client) { c.resolver = r } }

// WithJoiner sets the session service used when a server asks for
// authentication. Without one, such servers are refused.
func WithJoiner(j SessionJoiner) Option { return func(c *Client) { c.joiner = j } }

// WithBlocks sets the block registry of the game version. Dimensions then
// treat every air variant as air and size the global palette from it.
func WithBlocks(r *level.BlockRegistry) Option { return func(c *Client) { c.registry.blocks = r } }

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// Position is where the server last put the player.
type Position struct {
	X, Y, Z    float64
	Yaw, Pitch float32
}

// Client holds one account's connection to one server at a time.
type Client struct {
	Config *config.Config
	Events Events
	World  *level.World

	log      *logger.Logger
	metrics  *conn.Metrics
	resolver conn.Resolver
	joiner   SessionJoiner
	tracer   trace.Tracer

	mu       sync.Mutex
	session  *conn.Session
	registry registries
	cookies  map[codec.Identifier][]byte
	pos      Position
	loaded   bool
}

// New returns a client for cfg, or for the defaults when cfg is nil.
func New(cfg *config.Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Client{
		Config:  cfg,
		Events:  NewEvents(),
		tracer:  otel.Tracer(tracerName),
		cookies: make(map[codec.Identifier][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.World = level.NewWorld(c.registry.complete(level.Overworld))
	return c
}

// Blocks returns the block registry set with WithBlocks, or nil.
func (c *Client) Blocks() *level.BlockRegistry { return c.registry.blocks }

// Status is a server list response.
type Status struct {
	v769.ServerStatus
	Address conn.Address
	Latency time.Duration
}

// Status asks the server at address for its server list entry and measures
// the round trip of a ping.
func (c *Client) Status(ctx context.Context, address string) (status *Status, err error) {
	ctx, span := c.tracer.Start(ctx, "client.status", trace.WithAttributes(attribute.String("server.address", address)))
	defer func() { endSpan(span, err) }()

	cn, err := c.dial(ctx, address)
	if err != nil {
		return nil, err
	}
	defer cn.Close()
	defer context.AfterFunc(ctx, func() { cn.Close() })()
	cn.SetDeadline(c.deadline(ctx))

	fail := func(err error) (*Status, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	if err := cn.Send(intention(cn.Addr, packet.IntentStatus)); err != nil {
		return fail(err)
	}
	if err := cn.Send(&v769.ServerboundStatusRequest{}); err != nil {
		return fail(err)
	}
	resp, err := expect[*v769.ClientboundStatusResponse](cn)
	if err != nil {
		return fail(err)
	}
	sent := time.Now()
	if err := cn.Send(&v769.ServerboundPingRequest{Time: codec.Long(sent.UnixMilli())}); err != nil {
		return fail(err)
	}
	pong, err := expect[*v769.ClientboundPongResponse](cn)
	if err != nil {
		return fail(err)
	}
	latency := time.Since(sent)
	if int64(pong.Time) != sent.UnixMilli() {
		return nil, fmt.Errorf("%w: sent %d, got %d", ErrPingMismatch, sent.UnixMilli(), pong.Time)
	}
	span.SetAttributes(attribute.Int64("server.latency_ms", latency.Milliseconds()))
	return &Status{ServerStatus: resp.Status.Value, Address: cn.Addr, Latency: latency}, nil
}

// Join logs in to the server at address and handles the connection until
// the server disconnects, ctx is done or Close is called.
func (c *Client) Join(ctx context.Context, address string) error {
	cn, err := c.connect(ctx, address)
	if err != nil {
		return err
	}
	if err := c.login(ctx, cn); err != nil {
		cn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	s := conn.NewSession(cn, c.Config.Network.InboundQueue, c.Config.Network.OutboundQueue)
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()
		s.Close()
	}()

	err = c.run(ctx, s)
	c.Events.Emit(EventDisconnect, err)
	return err
}

func (c *Client) connect(ctx context.Context, address string) (cn *conn.Conn, err error) {
	ctx, span := c.tracer.Start(ctx, "client.connect", trace.WithAttributes(attribute.String("server.address", address)))
	defer func() { endSpan(span, err) }()
	cn, err = c.dial(ctx, address)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("server.ip", cn.Addr.IP))
	c.log.Info("[Client] Connecting to %s (%s)", address, cn.Addr)
	return cn, nil
}

func (c *Client) dial(ctx context.Context, address string) (*conn.Conn, error) {
	return conn.Connect(ctx, address, v769.Version,
		conn.WithResolver(c.resolver),
		conn.WithLogger(c.log),
		conn.WithMetrics(c.metrics),
		conn.WithTransitions(v769.NextState),
	)
}

// run alternates between configuration and play. The server may send the
// client back to configuration any number of times.
func (c *Client) run(ctx context.Context, s *conn.Session) error {
	for {
		if err := c.configure(ctx, s); err != nil {
			return err
		}
		if err := c.play(ctx, s); err != nil {
			return err
		}
	}
}

// next waits for the next packet of a session and extends the deadline.
func (c *Client) next(ctx context.Context, s *conn.Session) (packet.Packet, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r, ok := <-s.Incoming():
		if !ok {
			return nil, &conn.ConnectionError{Op: "recv", Addr: s.Conn().Addr.String(), Kind: conn.ErrClosed}
		}
		if r.Err != nil {
			return nil, r.Err
		}
		s.Conn().SetDeadline(time.Now().Add(c.timeout()))
		return r.Packet, nil
	}
}

// Send queues p on the current session.
func (c *Client) Send(ctx context.Context, p packet.Packet) error {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return ErrNotJoined
	}
	return s.Send(ctx, p)
}

// Chat sends an unsigned chat message.
func (c *Client) Chat(ctx context.Context, message string) error {
	return c.Send(ctx, &v769.ServerboundChat{
		Message:   codec.String(message),
		Timestamp: codec.Long(time.Now().UnixMilli()),
		Salt:      codec.Long(rand.Int63()),
	})
}

// Position returns the last position set by the server.
func (c *Client) Position() Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// Close ends the current session, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close()
}

func (c *Client) timeout() time.Duration {
	if c.Config.Network.Timeout <= 0 {
		return config.Default().Network.Timeout
	}
	return c.Config.Network.Timeout
}

func (c *Client) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout())
	if dl, ok := ctx.Deadline(); ok && dl.Before(d) {
		return dl
	}
	return d
}

func intention(addr conn.Address, intent packet.Intent) *v769.ServerboundIntention {
	return &v769.ServerboundIntention{
		Protocol: v769.Protocol,
		Address:  v769.Host(addr.Host),
		Port:     codec.UnsignedShort(addr.Port),
		Intent:   codec.VarInt(intent),
	}
}

// expect receives one packet and requires it to be a T.
func expect[T packet.Packet](cn *conn.Conn) (T, error) {
	var zero T
	p, err := cn.Recv()
	if err != nil {
		return zero, err
	}
	t, ok := p.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T, want %T", ErrUnexpectedPacket, p, zero)
	}
	return t, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
