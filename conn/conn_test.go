package conn

import (
	"bytes"
	"context"
	"crypto/aes"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/net/CFB8"
	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/dynamitemc/froglight/protocol/packet"
	"github.com/dynamitemc/froglight/protocol/v769"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipe returns a client and a server connected in memory.
func pipe(t *testing.T, opts ...Option) (client, server *Conn) {
	t.Helper()
	a, b := net.Pipe()
	deadline := time.Now().Add(5 * time.Second)
	a.SetDeadline(deadline)
	b.SetDeadline(deadline)
	opts = append([]Option{WithTransitions(v769.NextState)}, opts...)
	client = NewConn(a, packet.Client, v769.Version, opts...)
	server = NewConn(b, packet.Server, v769.Version, opts...)
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func async(f func() error) <-chan error {
	done := make(chan error, 1)
	go func() { done <- f() }()
	return done
}

func intention(intent packet.Intent) *v769.ServerboundIntention {
	return &v769.ServerboundIntention{Protocol: v769.Protocol, Address: "localhost", Port: 25565, Intent: codec.VarInt(intent)}
}

func TestStatusExchange(t *testing.T) {
	client, server := pipe(t)

	done := async(func() error {
		p, err := server.Recv()
		if err != nil {
			return err
		}
		if _, ok := p.(*v769.ServerboundIntention); !ok {
			return fmt.Errorf("got %T, want intention", p)
		}
		if _, err := server.Recv(); err != nil {
			return err
		}
		err = server.Send(&v769.ClientboundStatusResponse{Status: codec.JSON[v769.ServerStatus]{Value: v769.ServerStatus{
			Version:     v769.StatusVersion{Name: v769.Name, Protocol: v769.Protocol},
			Players:     v769.StatusPlayers{Max: 20},
			Description: chat.Text("A Minecraft Server"),
		}}})
		if err != nil {
			return err
		}
		p, err = server.Recv()
		if err != nil {
			return err
		}
		ping, ok := p.(*v769.ServerboundPingRequest)
		if !ok {
			return fmt.Errorf("got %T, want ping", p)
		}
		return server.Send(&v769.ClientboundPongResponse{Time: ping.Time})
	})

	require.NoError(t, client.Send(intention(packet.IntentStatus)))
	read, write := client.State()
	assert.Equal(t, packet.Status, read)
	assert.Equal(t, packet.Status, write)

	require.NoError(t, client.Send(&v769.ServerboundStatusRequest{}))
	p, err := client.Recv()
	require.NoError(t, err)
	status := p.(*v769.ClientboundStatusResponse).Status.Value
	assert.Equal(t, v769.Protocol, status.Version.Protocol)
	assert.Equal(t, "A Minecraft Server", status.Description.ClearString())

	require.NoError(t, client.Send(&v769.ServerboundPingRequest{Time: 12345}))
	p, err = client.Recv()
	require.NoError(t, err)
	assert.Equal(t, codec.Long(12345), p.(*v769.ClientboundPongResponse).Time)

	require.NoError(t, <-done)
}

func TestLoginHalvesDiverge(t *testing.T) {
	client, server := pipe(t)
	require.NoError(t, client.IntoLogin())
	require.NoError(t, server.IntoLogin())

	done := async(func() error { return server.Send(&v769.ClientboundLoginFinished{Name: "Steve"}) })
	_, err := client.Recv()
	require.NoError(t, err)
	require.NoError(t, <-done)

	read, write := client.State()
	assert.Equal(t, packet.Configuration, read)
	assert.Equal(t, packet.Login, write)
	read, write = server.State()
	assert.Equal(t, packet.Login, read)
	assert.Equal(t, packet.Configuration, write)

	done = async(func() error {
		_, err := server.Recv()
		return err
	})
	require.NoError(t, client.Send(&v769.ServerboundLoginAcknowledged{}))
	require.NoError(t, <-done)

	for _, c := range []*Conn{client, server} {
		read, write := c.State()
		assert.Equal(t, packet.Configuration, read, c.Role())
		assert.Equal(t, packet.Configuration, write, c.Role())
	}
}

func TestIllegalTransitions(t *testing.T) {
	client, _ := pipe(t)

	var terr *TransitionError
	require.ErrorAs(t, client.IntoPlay(), &terr)
	assert.Equal(t, packet.Handshake, terr.From)
	assert.Equal(t, packet.Play, terr.To)

	require.NoError(t, client.IntoStatus())
	assert.ErrorAs(t, client.IntoLogin(), &terr)
	read, write := client.State()
	assert.Equal(t, packet.Status, read)
	assert.Equal(t, packet.Status, write)
}

func TestTransitionMovesBothOrNeither(t *testing.T) {
	client, _ := pipe(t)
	require.NoError(t, client.Read.Into(packet.Login))
	require.NoError(t, client.Read.Into(packet.Configuration))

	var terr *TransitionError
	require.ErrorAs(t, client.IntoPlay(), &terr)
	assert.Equal(t, packet.Handshake, terr.From)
	assert.Equal(t, packet.Configuration, client.Read.State())
	assert.Equal(t, packet.Handshake, client.Write.State())
}

func TestUnexpectedPacket(t *testing.T) {
	client, server := pipe(t)

	err := client.Send(&v769.ServerboundStatusRequest{})
	assert.ErrorIs(t, err, ErrUnexpectedPacket)
	err = client.Send(&v769.ClientboundPongResponse{})
	assert.ErrorIs(t, err, ErrUnexpectedPacket)

	// The refused packets did not touch the connection.
	done := async(func() error {
		_, err := server.Recv()
		return err
	})
	require.NoError(t, client.Send(intention(packet.IntentLogin)))
	require.NoError(t, <-done)
	assert.Equal(t, packet.Login, server.Read.State())
}

func TestDecodeErrorBreaksConnection(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	server := NewConn(b, packet.Server, v769.Version)
	defer server.Close()

	go a.Write([]byte{0x02, 0x7F, 0x00})
	_, err := server.Recv()
	var enum *codec.InvalidEnumError
	require.ErrorAs(t, err, &enum)
	assert.Equal(t, int64(0x7F), enum.Value)

	_, err = server.Recv()
	assert.ErrorIs(t, err, ErrBroken)
	assert.ErrorAs(t, err, &enum)
	assert.ErrorIs(t, server.Send(&v769.ClientboundPongResponse{}), ErrBroken)
}

func TestTrailingBytes(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	server := NewConn(b, packet.Server, v769.Version)
	defer server.Close()
	require.NoError(t, server.IntoStatus())

	go a.Write([]byte{0x02, 0x00, 0x09})
	_, err := server.Recv()
	assert.ErrorIs(t, err, ErrTrailingBytes)
}

func TestClosed(t *testing.T) {
	client, server := pipe(t)

	require.NoError(t, client.Close())
	assert.NoError(t, client.Close())
	assert.ErrorIs(t, client.Send(intention(packet.IntentStatus)), ErrClosed)
	_, err := client.Recv()
	assert.ErrorIs(t, err, ErrClosed)

	_, err = server.Recv()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEncryption(t *testing.T) {
	client, server := pipe(t)
	require.NoError(t, client.IntoLogin())
	require.NoError(t, server.IntoLogin())

	secret := []byte("0123456789abcdef")
	require.NoError(t, client.EnableEncryption(secret))
	require.NoError(t, server.EnableEncryption(secret))
	assert.ErrorIs(t, client.EnableEncryption(secret), ErrEncryptionState)

	hello := &v769.ServerboundHello{Name: "Steve", UUID: codec.UUID(uuid.MustParse("8667ba71-b85a-4004-af54-457a9734eed7"))}
	done := async(func() error { return client.Send(hello) })
	p, err := server.Recv()
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, hello, p)
}

func TestEncryptedWire(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	client := NewConn(a, packet.Client, v769.Version)
	defer client.Close()
	require.NoError(t, client.IntoLogin())

	secret := []byte("fedcba9876543210")
	require.NoError(t, client.EnableEncryption(secret))

	hello := &v769.ServerboundHello{Name: "Alex"}
	var payload bytes.Buffer
	_, err := v769.Version.Packets(packet.Login, packet.Serverbound).Encode(&payload, hello)
	require.NoError(t, err)
	plain := append(codec.AppendVarInt(nil, int32(payload.Len())), payload.Bytes()...)

	done := async(func() error { return client.Send(hello) })
	raw := make([]byte, len(plain))
	_, err = io.ReadFull(b, raw)
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.NotEqual(t, plain, raw)

	block, err := aes.NewCipher(secret)
	require.NoError(t, err)
	got := make([]byte, len(raw))
	CFB8.NewCFB8Decrypt(block, secret).XORKeyStream(got, raw)
	assert.Equal(t, plain, got)
}

func TestCompressedExchange(t *testing.T) {
	client, server := pipe(t)
	require.NoError(t, client.IntoLogin())
	require.NoError(t, server.IntoLogin())
	client.SetCompression(64)
	server.SetCompression(64)

	query := &v769.ClientboundCustomQuery{MessageID: 3, Channel: "froglight:test", Data: codec.RawBytes(bytes.Repeat([]byte("froglight"), 40))}
	done := async(func() error { return server.Send(query) })
	p, err := client.Recv()
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, query, p)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	client, server := pipe(t, WithMetrics(m))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.open))

	done := async(func() error {
		_, err := server.Recv()
		return err
	})
	require.NoError(t, client.Send(intention(packet.IntentStatus)))
	require.NoError(t, <-done)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.packetsSent.WithLabelValues("handshake")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.packetsReceived.WithLabelValues("handshake")))
	assert.Equal(t, 17.0, testutil.ToFloat64(m.bytesSent.WithLabelValues("handshake")))
	assert.Equal(t, 17.0, testutil.ToFloat64(m.bytesReceived.WithLabelValues("handshake")))

	client.Close()
	server.Close()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.open))
}

func TestConnect(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	accepted := make(chan net.Conn, 1)
	go func() {
		if s, err := l.Accept(); err == nil {
			accepted <- s
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Connect(ctx, l.Addr().String(), v769.Version)
	require.NoError(t, err)
	defer c.Close()
	(<-accepted).Close()

	assert.Equal(t, "127.0.0.1", c.Addr.IP)
	assert.Equal(t, packet.Client, c.Role())
	assert.False(t, c.Threshold().Enabled())
	read, write := c.State()
	assert.Equal(t, packet.Handshake, read)
	assert.Equal(t, packet.Handshake, write)
}

func TestConnectRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := l.Addr().String()
	l.Close()

	_, err = Connect(context.Background(), address, v769.Version)
	assert.ErrorIs(t, err, ErrDial)
}
