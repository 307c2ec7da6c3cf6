package v769

import (
	"io"

	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/yggdrasil/user"
	"github.com/dynamitemc/froglight/protocol/codec"
)

// Host is the server address sent in the handshake.
type Host string

const maxHostLength = 255

func (h Host) WriteTo(w io.Writer) (int64, error) { return codec.String(h).WriteTo(w) }
func (h Host) Len() int                           { return codec.String(h).Len() }

func (h *Host) ReadFrom(r io.Reader) (int64, error) {
	s, n, err := codec.ReadStringMax(r, maxHostLength)
	*h = Host(s)
	return n, err
}

// Username is a player name, at most 16 characters.
type Username string

const maxUsernameLength = 16

func (u Username) WriteTo(w io.Writer) (int64, error) { return codec.String(u).WriteTo(w) }
func (u Username) Len() int                           { return codec.String(u).Len() }

func (u *Username) ReadFrom(r io.Reader) (int64, error) {
	s, n, err := codec.ReadStringMax(r, maxUsernameLength)
	*u = Username(s)
	return n, err
}

// ServerStatus is the JSON document of the status response.
type ServerStatus struct {
	Version            StatusVersion `json:"version"`
	Players            StatusPlayers `json:"players"`
	Description        chat.Message  `json:"description"`
	Favicon            string        `json:"favicon,omitempty"`
	EnforcesSecureChat bool          `json:"enforcesSecureChat"`
}

type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type StatusPlayers struct {
	Max    int            `json:"max"`
	Online int            `json:"online"`
	Sample []StatusPlayer `json:"sample,omitempty"`
}

type StatusPlayer struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Property is a signed profile property, such as the skin texture.
type Property struct {
	user.Property
}

func (p *Property) tuple() codec.Tuple {
	sig := codec.Option[codec.String]{Has: p.Signature != "", Value: codec.String(p.Signature)}
	return codec.Tuple{(*codec.String)(&p.Name), (*codec.String)(&p.Value), &sig}
}

func (p *Property) WriteTo(w io.Writer) (int64, error) { return p.tuple().WriteTo(w) }
func (p *Property) Len() int                           { return p.tuple().Len() }

func (p *Property) ReadFrom(r io.Reader) (int64, error) {
	var sig codec.Option[codec.String]
	n, err := codec.Tuple{(*codec.String)(&p.Name), (*codec.String)(&p.Value), &sig}.ReadFrom(r)
	p.Signature = string(sig.Value)
	return n, err
}

// KnownPack names a data pack both sides may already have.
type KnownPack struct {
	Namespace codec.String
	ID        codec.String
	Version   codec.String
}

func (k *KnownPack) tuple() codec.Tuple { return codec.Tuple{&k.Namespace, &k.ID, &k.Version} }

func (k *KnownPack) WriteTo(w io.Writer) (int64, error)  { return k.tuple().WriteTo(w) }
func (k *KnownPack) Len() int                            { return k.tuple().Len() }
func (k *KnownPack) ReadFrom(r io.Reader) (int64, error) { return k.tuple().ReadFrom(r) }

// RegistryEntry is one element of a synchronized registry. Data is absent
// when the entry comes from a known pack.
type RegistryEntry struct {
	ID   codec.Identifier
	Data codec.Option[codec.NBT]
}

func (e *RegistryEntry) tuple() codec.Tuple { return codec.Tuple{&e.ID, &e.Data} }

func (e *RegistryEntry) WriteTo(w io.Writer) (int64, error)  { return e.tuple().WriteTo(w) }
func (e *RegistryEntry) Len() int                            { return e.tuple().Len() }
func (e *RegistryEntry) ReadFrom(r io.Reader) (int64, error) { return e.tuple().ReadFrom(r) }

// Tag is a named list of registry ids.
type Tag struct {
	Name    codec.Identifier
	Entries codec.Array[codec.VarInt]
}

func (t *Tag) tuple() codec.Tuple { return codec.Tuple{&t.Name, &t.Entries} }

func (t *Tag) WriteTo(w io.Writer) (int64, error)  { return t.tuple().WriteTo(w) }
func (t *Tag) Len() int                            { return t.tuple().Len() }
func (t *Tag) ReadFrom(r io.Reader) (int64, error) { return t.tuple().ReadFrom(r) }

// RegistryTags are the tags of one registry.
type RegistryTags struct {
	Registry codec.Identifier
	Tags     codec.Array[Tag]
}

func (t *RegistryTags) tuple() codec.Tuple { return codec.Tuple{&t.Registry, &t.Tags} }

func (t *RegistryTags) WriteTo(w io.Writer) (int64, error)  { return t.tuple().WriteTo(w) }
func (t *RegistryTags) Len() int                            { return t.tuple().Len() }
func (t *RegistryTags) ReadFrom(r io.Reader) (int64, error) { return t.tuple().ReadFrom(r) }

type ReportDetail struct {
	Title       codec.String
	Description codec.String
}

func (d *ReportDetail) tuple() codec.Tuple { return codec.Tuple{&d.Title, &d.Description} }

func (d *ReportDetail) WriteTo(w io.Writer) (int64, error)  { return d.tuple().WriteTo(w) }
func (d *ReportDetail) Len() int                            { return d.tuple().Len() }
func (d *ReportDetail) ReadFrom(r io.Reader) (int64, error) { return d.tuple().ReadFrom(r) }

// ServerLink is an entry of the pause menu link list. The label is either
// one of the built-in kinds or a custom text component.
type ServerLink struct {
	BuiltIn bool
	Kind    codec.VarInt
	Label   codec.Text
	URL     codec.String
}

func (l *ServerLink) tuple() codec.Tuple {
	if l.BuiltIn {
		return codec.Tuple{&l.Kind, &l.URL}
	}
	return codec.Tuple{&l.Label, &l.URL}
}

func (l *ServerLink) WriteTo(w io.Writer) (int64, error) {
	n, err := codec.Boolean(l.BuiltIn).WriteTo(w)
	if err != nil {
		return n, err
	}
	nn, err := l.tuple().WriteTo(w)
	return n + nn, err
}

func (l *ServerLink) Len() int { return 1 + l.tuple().Len() }

func (l *ServerLink) ReadFrom(r io.Reader) (int64, error) {
	n, err := (*codec.Boolean)(&l.BuiltIn).ReadFrom(r)
	if err != nil {
		return n, err
	}
	nn, err := l.tuple().ReadFrom(r)
	return n + nn, err
}

// ChatMode values of ClientInformation.
const (
	ChatEnabled = iota
	ChatCommandsOnly
	ChatHidden
)

// MainHand values of ClientInformation.
const (
	LeftHand = iota
	RightHand
)

// ClientInformation is the client settings block, sent during
// configuration and again in play when the settings change.
type ClientInformation struct {
	Locale              codec.String
	ViewDistance        codec.Byte
	ChatMode            codec.VarInt
	ChatColors          codec.Boolean
	DisplayedSkinParts  codec.UnsignedByte
	MainHand            codec.VarInt
	EnableTextFiltering codec.Boolean
	AllowServerListings codec.Boolean
	ParticleStatus      codec.VarInt
}

func (c *ClientInformation) Fields() codec.Tuple {
	return codec.Tuple{
		&c.Locale, &c.ViewDistance, &c.ChatMode, &c.ChatColors, &c.DisplayedSkinParts,
		&c.MainHand, &c.EnableTextFiltering, &c.AllowServerListings, &c.ParticleStatus,
	}
}

// GlobalPos is a block position in a named dimension.
type GlobalPos struct {
	Dimension codec.Identifier
	Pos       codec.Position
}

func (g *GlobalPos) tuple() codec.Tuple { return codec.Tuple{&g.Dimension, &g.Pos} }

func (g *GlobalPos) WriteTo(w io.Writer) (int64, error)  { return g.tuple().WriteTo(w) }
func (g *GlobalPos) Len() int                            { return g.tuple().Len() }
func (g *GlobalPos) ReadFrom(r io.Reader) (int64, error) { return g.tuple().ReadFrom(r) }

// BlockEntity is a block entity carried in chunk data. The position inside
// the chunk is packed as x<<4|z.
type BlockEntity struct {
	PackedXZ codec.UnsignedByte
	Y        codec.Short
	Type     codec.VarInt
	Data     codec.NBT
}

func (b *BlockEntity) X() int { return int(b.PackedXZ >> 4) }
func (b *BlockEntity) Z() int { return int(b.PackedXZ & 15) }

func (b *BlockEntity) tuple() codec.Tuple { return codec.Tuple{&b.PackedXZ, &b.Y, &b.Type, &b.Data} }

func (b *BlockEntity) WriteTo(w io.Writer) (int64, error)  { return b.tuple().WriteTo(w) }
func (b *BlockEntity) Len() int                            { return b.tuple().Len() }
func (b *BlockEntity) ReadFrom(r io.Reader) (int64, error) { return b.tuple().ReadFrom(r) }

// ChunkData is the block part of a chunk packet: heightmaps, the
// concatenated sections and the block entities.
type ChunkData struct {
	Heightmaps    codec.NBT
	Data          codec.ByteArray
	BlockEntities codec.Array[BlockEntity]
}

func (c *ChunkData) tuple() codec.Tuple { return codec.Tuple{&c.Heightmaps, &c.Data, &c.BlockEntities} }

func (c *ChunkData) WriteTo(w io.Writer) (int64, error)  { return c.tuple().WriteTo(w) }
func (c *ChunkData) Len() int                            { return c.tuple().Len() }
func (c *ChunkData) ReadFrom(r io.Reader) (int64, error) { return c.tuple().ReadFrom(r) }

// LightData carries sky and block light for the sections of a chunk column,
// one 2048 byte array per section set in the masks.
type LightData struct {
	SkyMask        codec.BitSet
	BlockMask      codec.BitSet
	EmptySkyMask   codec.BitSet
	EmptyBlockMask codec.BitSet
	SkyLight       codec.Array[codec.ByteArray]
	BlockLight     codec.Array[codec.ByteArray]
}

func (l *LightData) tuple() codec.Tuple {
	return codec.Tuple{&l.SkyMask, &l.BlockMask, &l.EmptySkyMask, &l.EmptyBlockMask, &l.SkyLight, &l.BlockLight}
}

func (l *LightData) WriteTo(w io.Writer) (int64, error)  { return l.tuple().WriteTo(w) }
func (l *LightData) Len() int                            { return l.tuple().Len() }
func (l *LightData) ReadFrom(r io.Reader) (int64, error) { return l.tuple().ReadFrom(r) }

// MessageSignature is the fixed 256 byte signature of a chat message.
type MessageSignature [256]codec.UnsignedByte

func (s *MessageSignature) fixed() codec.FixedArray[codec.UnsignedByte] { return s[:] }

func (s *MessageSignature) WriteTo(w io.Writer) (int64, error)  { return s.fixed().WriteTo(w) }
func (s *MessageSignature) Len() int                            { return len(s) }
func (s *MessageSignature) ReadFrom(r io.Reader) (int64, error) { return s.fixed().ReadFrom(r) }

// Acknowledged is the fixed 20 bit set of acknowledged chat messages.
type Acknowledged [3]codec.UnsignedByte

func (a *Acknowledged) fixed() codec.FixedArray[codec.UnsignedByte] { return a[:] }

func (a *Acknowledged) WriteTo(w io.Writer) (int64, error)  { return a.fixed().WriteTo(w) }
func (a *Acknowledged) Len() int                            { return len(a) }
func (a *Acknowledged) ReadFrom(r io.Reader) (int64, error) { return a.fixed().ReadFrom(r) }
