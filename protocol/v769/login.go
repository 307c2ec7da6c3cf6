package v769

import (
	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/dynamitemc/froglight/protocol/packet"
)

// Handshake

type ServerboundIntention struct {
	Protocol codec.VarInt
	Address  Host
	Port     codec.UnsignedShort
	Intent   codec.VarInt
}

func (p *ServerboundIntention) Fields() codec.Tuple {
	return codec.Tuple{&p.Protocol, &p.Address, &p.Port, &p.Intent}
}

// Status

type ClientboundStatusResponse struct {
	Status codec.JSON[ServerStatus]
}

func (p *ClientboundStatusResponse) Fields() codec.Tuple { return codec.Tuple{&p.Status} }

type ClientboundPongResponse struct {
	Time codec.Long
}

func (p *ClientboundPongResponse) Fields() codec.Tuple { return codec.Tuple{&p.Time} }

type ServerboundStatusRequest struct{}

func (*ServerboundStatusRequest) Fields() codec.Tuple { return nil }

type ServerboundPingRequest struct {
	Time codec.Long
}

func (p *ServerboundPingRequest) Fields() codec.Tuple { return codec.Tuple{&p.Time} }

// Login

type ClientboundLoginDisconnect struct {
	Reason codec.Chat
}

func (p *ClientboundLoginDisconnect) Fields() codec.Tuple { return codec.Tuple{&p.Reason} }

// ClientboundHello asks the client to enable encryption.
type ClientboundHello struct {
	ServerID           codec.String
	PublicKey          codec.ByteArray
	VerifyToken        codec.ByteArray
	ShouldAuthenticate codec.Boolean
}

func (p *ClientboundHello) Fields() codec.Tuple {
	return codec.Tuple{&p.ServerID, &p.PublicKey, &p.VerifyToken, &p.ShouldAuthenticate}
}

type ClientboundLoginFinished struct {
	UUID       codec.UUID
	Name       Username
	Properties codec.Array[Property]
}

func (p *ClientboundLoginFinished) Fields() codec.Tuple {
	return codec.Tuple{&p.UUID, &p.Name, &p.Properties}
}

type ClientboundLoginCompression struct {
	Threshold codec.VarInt
}

func (p *ClientboundLoginCompression) Fields() codec.Tuple { return codec.Tuple{&p.Threshold} }

type ClientboundCustomQuery struct {
	MessageID codec.VarInt
	Channel   codec.Identifier
	Data      codec.RawBytes
}

func (p *ClientboundCustomQuery) Fields() codec.Tuple {
	return codec.Tuple{&p.MessageID, &p.Channel, &p.Data}
}

type ClientboundLoginCookieRequest struct {
	Key codec.Identifier
}

func (p *ClientboundLoginCookieRequest) Fields() codec.Tuple { return codec.Tuple{&p.Key} }

type ServerboundHello struct {
	Name Username
	UUID codec.UUID
}

func (p *ServerboundHello) Fields() codec.Tuple { return codec.Tuple{&p.Name, &p.UUID} }

// ServerboundKey carries the shared secret and verify token, both
// encrypted with the server's public key.
type ServerboundKey struct {
	SharedSecret codec.ByteArray
	VerifyToken  codec.ByteArray
}

func (p *ServerboundKey) Fields() codec.Tuple { return codec.Tuple{&p.SharedSecret, &p.VerifyToken} }

// ServerboundCustomQueryAnswer without data means the query was not
// understood.
type ServerboundCustomQueryAnswer struct {
	MessageID codec.VarInt
	Data      codec.Option[codec.RawBytes]
}

func (p *ServerboundCustomQueryAnswer) Fields() codec.Tuple { return codec.Tuple{&p.MessageID, &p.Data} }

type ServerboundLoginAcknowledged struct{}

func (*ServerboundLoginAcknowledged) Fields() codec.Tuple { return nil }

type ServerboundLoginCookieResponse struct {
	Key     codec.Identifier
	Payload codec.Option[codec.ByteArray]
}

func (p *ServerboundLoginCookieResponse) Fields() codec.Tuple { return codec.Tuple{&p.Key, &p.Payload} }

var (
	handshakeClientbound = packet.NewSet(packet.Handshake, packet.Clientbound)
	handshakeServerbound = packet.NewSet(packet.Handshake, packet.Serverbound,
		packet.Entry{ID: 0x00, Name: "intention", New: func() packet.Packet { return new(ServerboundIntention) }},
	)

	statusClientbound = packet.NewSet(packet.Status, packet.Clientbound,
		packet.Entry{ID: 0x00, Name: "status_response", New: func() packet.Packet { return new(ClientboundStatusResponse) }},
		packet.Entry{ID: 0x01, Name: "pong_response", New: func() packet.Packet { return new(ClientboundPongResponse) }},
	)
	statusServerbound = packet.NewSet(packet.Status, packet.Serverbound,
		packet.Entry{ID: 0x00, Name: "status_request", New: func() packet.Packet { return new(ServerboundStatusRequest) }},
		packet.Entry{ID: 0x01, Name: "ping_request", New: func() packet.Packet { return new(ServerboundPingRequest) }},
	)

	loginClientbound = packet.NewSet(packet.Login, packet.Clientbound,
		packet.Entry{ID: 0x00, Name: "login_disconnect", New: func() packet.Packet { return new(ClientboundLoginDisconnect) }},
		packet.Entry{ID: 0x01, Name: "hello", New: func() packet.Packet { return new(ClientboundHello) }},
		packet.Entry{ID: 0x02, Name: "login_finished", New: func() packet.Packet { return new(ClientboundLoginFinished) }},
		packet.Entry{ID: 0x03, Name: "login_compression", New: func() packet.Packet { return new(ClientboundLoginCompression) }},
		packet.Entry{ID: 0x04, Name: "custom_query", New: func() packet.Packet { return new(ClientboundCustomQuery) }},
		packet.Entry{ID: 0x05, Name: "cookie_request", New: func() packet.Packet { return new(ClientboundLoginCookieRequest) }},
	)
	loginServerbound = packet.NewSet(packet.Login, packet.Serverbound,
		packet.Entry{ID: 0x00, Name: "hello", New: func() packet.Packet { return new(ServerboundHello) }},
		packet.Entry{ID: 0x01, Name: "key", New: func() packet.Packet { return new(ServerboundKey) }},
		packet.Entry{ID: 0x02, Name: "custom_query_answer", New: func() packet.Packet { return new(ServerboundCustomQueryAnswer) }},
		packet.Entry{ID: 0x03, Name: "login_acknowledged", New: func() packet.Packet { return new(ServerboundLoginAcknowledged) }},
		packet.Entry{ID: 0x04, Name: "cookie_response", New: func() packet.Packet { return new(ServerboundLoginCookieResponse) }},
	)
)
