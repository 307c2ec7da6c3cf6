package v769

import (
	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/dynamitemc/froglight/protocol/packet"
)

type ClientboundCookieRequest struct {
	Key codec.Identifier
}

func (p *ClientboundCookieRequest) Fields() codec.Tuple { return codec.Tuple{&p.Key} }

type ClientboundCustomPayload struct {
	Channel codec.Identifier
	Data    codec.RawBytes
}

func (p *ClientboundCustomPayload) Fields() codec.Tuple { return codec.Tuple{&p.Channel, &p.Data} }

type ClientboundConfigDisconnect struct {
	Reason codec.Text
}

func (p *ClientboundConfigDisconnect) Fields() codec.Tuple { return codec.Tuple{&p.Reason} }

type ClientboundFinishConfiguration struct{}

func (*ClientboundFinishConfiguration) Fields() codec.Tuple { return nil }

type ClientboundConfigKeepAlive struct {
	ID codec.Long
}

func (p *ClientboundConfigKeepAlive) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

type ClientboundConfigPing struct {
	ID codec.Int
}

func (p *ClientboundConfigPing) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

type ClientboundResetChat struct{}

func (*ClientboundResetChat) Fields() codec.Tuple { return nil }

// ClientboundRegistryData sends the entries of one synchronized registry,
// e.g. minecraft:dimension_type.
type ClientboundRegistryData struct {
	Registry codec.Identifier
	Entries  codec.Array[RegistryEntry]
}

func (p *ClientboundRegistryData) Fields() codec.Tuple { return codec.Tuple{&p.Registry, &p.Entries} }

// ClientboundResourcePackPop removes one pack, or all of them when ID is
// absent.
type ClientboundResourcePackPop struct {
	ID codec.Option[codec.UUID]
}

func (p *ClientboundResourcePackPop) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

type ClientboundResourcePackPush struct {
	ID     codec.UUID
	URL    codec.String
	Hash   codec.String
	Forced codec.Boolean
	Prompt codec.Option[codec.Text]
}

func (p *ClientboundResourcePackPush) Fields() codec.Tuple {
	return codec.Tuple{&p.ID, &p.URL, &p.Hash, &p.Forced, &p.Prompt}
}

type ClientboundStoreCookie struct {
	Key     codec.Identifier
	Payload codec.ByteArray
}

func (p *ClientboundStoreCookie) Fields() codec.Tuple { return codec.Tuple{&p.Key, &p.Payload} }

type ClientboundTransfer struct {
	Host codec.String
	Port codec.VarInt
}

func (p *ClientboundTransfer) Fields() codec.Tuple { return codec.Tuple{&p.Host, &p.Port} }

type ClientboundUpdateEnabledFeatures struct {
	Features codec.Array[codec.Identifier]
}

func (p *ClientboundUpdateEnabledFeatures) Fields() codec.Tuple { return codec.Tuple{&p.Features} }

type ClientboundUpdateTags struct {
	Registries codec.Array[RegistryTags]
}

func (p *ClientboundUpdateTags) Fields() codec.Tuple { return codec.Tuple{&p.Registries} }

type ClientboundSelectKnownPacks struct {
	Packs codec.Array[KnownPack]
}

func (p *ClientboundSelectKnownPacks) Fields() codec.Tuple { return codec.Tuple{&p.Packs} }

type ClientboundCustomReportDetails struct {
	Details codec.Array[ReportDetail]
}

func (p *ClientboundCustomReportDetails) Fields() codec.Tuple { return codec.Tuple{&p.Details} }

type ClientboundServerLinks struct {
	Links codec.Array[ServerLink]
}

func (p *ClientboundServerLinks) Fields() codec.Tuple { return codec.Tuple{&p.Links} }

type ServerboundCookieResponse struct {
	Key     codec.Identifier
	Payload codec.Option[codec.ByteArray]
}

func (p *ServerboundCookieResponse) Fields() codec.Tuple { return codec.Tuple{&p.Key, &p.Payload} }

type ServerboundCustomPayload struct {
	Channel codec.Identifier
	Data    codec.RawBytes
}

func (p *ServerboundCustomPayload) Fields() codec.Tuple { return codec.Tuple{&p.Channel, &p.Data} }

type ServerboundFinishConfiguration struct{}

func (*ServerboundFinishConfiguration) Fields() codec.Tuple { return nil }

type ServerboundConfigKeepAlive struct {
	ID codec.Long
}

func (p *ServerboundConfigKeepAlive) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

type ServerboundConfigPong struct {
	ID codec.Int
}

func (p *ServerboundConfigPong) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

// Resource pack results.
const (
	PackLoaded = iota
	PackDeclined
	PackFailedDownload
	PackAccepted
	PackDownloaded
	PackInvalidURL
	PackFailedReload
	PackDiscarded
)

type ServerboundResourcePack struct {
	ID     codec.UUID
	Result codec.VarInt
}

func (p *ServerboundResourcePack) Fields() codec.Tuple { return codec.Tuple{&p.ID, &p.Result} }

type ServerboundSelectKnownPacks struct {
	Packs codec.Array[KnownPack]
}

func (p *ServerboundSelectKnownPacks) Fields() codec.Tuple { return codec.Tuple{&p.Packs} }

// ServerboundConfigClientInformation and ServerboundPlayClientInformation
// share the ClientInformation layout.
type ServerboundConfigClientInformation struct {
	ClientInformation
}

var (
	configClientbound = packet.NewSet(packet.Configuration, packet.Clientbound,
		packet.Entry{ID: 0x00, Name: "cookie_request", New: func() packet.Packet { return new(ClientboundCookieRequest) }},
		packet.Entry{ID: 0x01, Name: "custom_payload", New: func() packet.Packet { return new(ClientboundCustomPayload) }},
		packet.Entry{ID: 0x02, Name: "disconnect", New: func() packet.Packet { return new(ClientboundConfigDisconnect) }},
		packet.Entry{ID: 0x03, Name: "finish_configuration", New: func() packet.Packet { return new(ClientboundFinishConfiguration) }},
		packet.Entry{ID: 0x04, Name: "keep_alive", New: func() packet.Packet { return new(ClientboundConfigKeepAlive) }},
		packet.Entry{ID: 0x05, Name: "ping", New: func() packet.Packet { return new(ClientboundConfigPing) }},
		packet.Entry{ID: 0x06, Name: "reset_chat", New: func() packet.Packet { return new(ClientboundResetChat) }},
		packet.Entry{ID: 0x07, Name: "registry_data", New: func() packet.Packet { return new(ClientboundRegistryData) }},
		packet.Entry{ID: 0x08, Name: "resource_pack_pop", New: func() packet.Packet { return new(ClientboundResourcePackPop) }},
		packet.Entry{ID: 0x09, Name: "resource_pack_push", New: func() packet.Packet { return new(ClientboundResourcePackPush) }},
		packet.Entry{ID: 0x0A, Name: "store_cookie", New: func() packet.Packet { return new(ClientboundStoreCookie) }},
		packet.Entry{ID: 0x0B, Name: "transfer", New: func() packet.Packet { return new(ClientboundTransfer) }},
		packet.Entry{ID: 0x0C, Name: "update_enabled_features", New: func() packet.Packet { return new(ClientboundUpdateEnabledFeatures) }},
		packet.Entry{ID: 0x0D, Name: "update_tags", New: func() packet.Packet { return new(ClientboundUpdateTags) }},
		packet.Entry{ID: 0x0E, Name: "select_known_packs", New: func() packet.Packet { return new(ClientboundSelectKnownPacks) }},
		packet.Entry{ID: 0x0F, Name: "custom_report_details", New: func() packet.Packet { return new(ClientboundCustomReportDetails) }},
		packet.Entry{ID: 0x10, Name: "server_links", New: func() packet.Packet { return new(ClientboundServerLinks) }},
	)
	configServerbound = packet.NewSet(packet.Configuration, packet.Serverbound,
		packet.Entry{ID: 0x00, Name: "client_information", New: func() packet.Packet { return new(ServerboundConfigClientInformation) }},
		packet.Entry{ID: 0x01, Name: "cookie_response", New: func() packet.Packet { return new(ServerboundCookieResponse) }},
		packet.Entry{ID: 0x02, Name: "custom_payload", New: func() packet.Packet { return new(ServerboundCustomPayload) }},
		packet.Entry{ID: 0x03, Name: "finish_configuration", New: func() packet.Packet { return new(ServerboundFinishConfiguration) }},
		packet.Entry{ID: 0x04, Name: "keep_alive", New: func() packet.Packet { return new(ServerboundConfigKeepAlive) }},
		packet.Entry{ID: 0x05, Name: "pong", New: func() packet.Packet { return new(ServerboundConfigPong) }},
		packet.Entry{ID: 0x06, Name: "resource_pack", New: func() packet.Packet { return new(ServerboundResourcePack) }},
		packet.Entry{ID: 0x07, Name: "select_known_packs", New: func() packet.Packet { return new(ServerboundSelectKnownPacks) }},
	)
)
