package v769

import (
	"github.com/dynamitemc/froglight/protocol/codec"
)

type ClientboundBlockUpdate struct {
	Pos   codec.Position
	State codec.VarInt
}

func (p *ClientboundBlockUpdate) Fields() codec.Tuple { return codec.Tuple{&p.Pos, &p.State} }

type ClientboundChunkBatchFinished struct {
	BatchSize codec.VarInt
}

func (p *ClientboundChunkBatchFinished) Fields() codec.Tuple { return codec.Tuple{&p.BatchSize} }

type ClientboundChunkBatchStart struct{}

func (*ClientboundChunkBatchStart) Fields() codec.Tuple { return nil }

type ClientboundPlayDisconnect struct {
	Reason codec.Text
}

func (p *ClientboundPlayDisconnect) Fields() codec.Tuple { return codec.Tuple{&p.Reason} }

type ClientboundForgetLevelChunk struct {
	Z codec.Int
	X codec.Int
}

func (p *ClientboundForgetLevelChunk) Fields() codec.Tuple { return codec.Tuple{&p.Z, &p.X} }

// Game events.
const (
	GameEventNoRespawnBlock = iota
	GameEventStartRaining
	GameEventStopRaining
	GameEventChangeGameMode
	GameEventWinGame
	GameEventDemo
	GameEventArrowHitPlayer
	GameEventRainLevel
	GameEventThunderLevel
	GameEventPufferfishSting
	GameEventGuardianCurse
	GameEventImmediateRespawn
	GameEventLimitedCrafting
	GameEventLevelChunksLoadStart
)

type ClientboundGameEvent struct {
	Event codec.UnsignedByte
	Value codec.Float
}

func (p *ClientboundGameEvent) Fields() codec.Tuple { return codec.Tuple{&p.Event, &p.Value} }

type ClientboundPlayKeepAlive struct {
	ID codec.Long
}

func (p *ClientboundPlayKeepAlive) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

type ClientboundLevelChunkWithLight struct {
	X     codec.Int
	Z     codec.Int
	Chunk ChunkData
	Light LightData
}

func (p *ClientboundLevelChunkWithLight) Fields() codec.Tuple {
	return codec.Tuple{&p.X, &p.Z, &p.Chunk, &p.Light}
}

// ClientboundLogin is the first packet of the play state.
type ClientboundLogin struct {
	EntityID           codec.Int
	Hardcore           codec.Boolean
	Dimensions         codec.Array[codec.Identifier]
	MaxPlayers         codec.VarInt
	ViewDistance       codec.VarInt
	SimulationDistance codec.VarInt
	ReducedDebugInfo   codec.Boolean
	ShowDeathScreen    codec.Boolean
	DoLimitedCrafting  codec.Boolean
	DimensionType      codec.VarInt
	DimensionName      codec.Identifier
	HashedSeed         codec.Long
	GameMode           codec.UnsignedByte
	PreviousGameMode   codec.Byte
	IsDebug            codec.Boolean
	IsFlat             codec.Boolean
	DeathLocation      codec.Option[GlobalPos]
	PortalCooldown     codec.VarInt
	SeaLevel           codec.VarInt
	EnforcesSecureChat codec.Boolean
}

func (p *ClientboundLogin) Fields() codec.Tuple {
	return codec.Tuple{
		&p.EntityID, &p.Hardcore, &p.Dimensions, &p.MaxPlayers, &p.ViewDistance,
		&p.SimulationDistance, &p.ReducedDebugInfo, &p.ShowDeathScreen, &p.DoLimitedCrafting,
		&p.DimensionType, &p.DimensionName, &p.HashedSeed, &p.GameMode, &p.PreviousGameMode,
		&p.IsDebug, &p.IsFlat, &p.DeathLocation, &p.PortalCooldown, &p.SeaLevel, &p.EnforcesSecureChat,
	}
}

type ClientboundPlayPing struct {
	ID codec.Int
}

func (p *ClientboundPlayPing) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

type ClientboundPlayPongResponse struct {
	Time codec.Long
}

func (p *ClientboundPlayPongResponse) Fields() codec.Tuple { return codec.Tuple{&p.Time} }

// Relative flags of ClientboundPlayerPosition. A set bit means the value
// is an offset from the current one.
const (
	RelativeX = 1 << iota
	RelativeY
	RelativeZ
	RelativeYaw
	RelativePitch
)

type ClientboundPlayerPosition struct {
	TeleportID codec.VarInt
	X, Y, Z    codec.Double
	VelocityX  codec.Double
	VelocityY  codec.Double
	VelocityZ  codec.Double
	Yaw, Pitch codec.Float
	Flags      codec.Int
}

func (p *ClientboundPlayerPosition) Fields() codec.Tuple {
	return codec.Tuple{
		&p.TeleportID, &p.X, &p.Y, &p.Z, &p.VelocityX, &p.VelocityY, &p.VelocityZ,
		&p.Yaw, &p.Pitch, &p.Flags,
	}
}

// Data kept across a respawn.
const (
	KeepAttributes = 1 << iota
	KeepEntityData
)

// ClientboundRespawn moves the player to a new world, or back into the
// same one after death.
type ClientboundRespawn struct {
	DimensionType    codec.VarInt
	DimensionName    codec.Identifier
	HashedSeed       codec.Long
	GameMode         codec.UnsignedByte
	PreviousGameMode codec.Byte
	IsDebug          codec.Boolean
	IsFlat           codec.Boolean
	DeathLocation    codec.Option[GlobalPos]
	PortalCooldown   codec.VarInt
	SeaLevel         codec.VarInt
	DataKept         codec.Byte
}

func (p *ClientboundRespawn) Fields() codec.Tuple {
	return codec.Tuple{
		&p.DimensionType, &p.DimensionName, &p.HashedSeed, &p.GameMode, &p.PreviousGameMode,
		&p.IsDebug, &p.IsFlat, &p.DeathLocation, &p.PortalCooldown, &p.SeaLevel, &p.DataKept,
	}
}

// ClientboundSectionBlocksUpdate changes several blocks of one section.
type ClientboundSectionBlocksUpdate struct {
	Section codec.Long
	Blocks  codec.Array[codec.VarLong]
}

func (p *ClientboundSectionBlocksUpdate) Fields() codec.Tuple { return codec.Tuple{&p.Section, &p.Blocks} }

// SectionPos unpacks the section coordinates: x and z in 22 bits, y in 20.
func (p *ClientboundSectionBlocksUpdate) SectionPos() (x, y, z int) {
	v := int64(p.Section)
	return int(v >> 42), int(v << 44 >> 44), int(v << 22 >> 42)
}

// Block unpacks entry i into a block state and its position inside the
// section.
func (p *ClientboundSectionBlocksUpdate) Block(i int) (state int32, x, y, z int) {
	v := int64(p.Blocks[i])
	return int32(v >> 12), int(v>>8) & 15, int(v) & 15, int(v>>4) & 15
}

// PackSectionPos is the inverse of SectionPos.
func PackSectionPos(x, y, z int) codec.Long {
	return codec.Long(int64(x&0x3FFFFF)<<42 | int64(z&0x3FFFFF)<<20 | int64(y&0xFFFFF))
}

// PackSectionBlock is the inverse of Block.
func PackSectionBlock(state int32, x, y, z int) codec.VarLong {
	return codec.VarLong(int64(state)<<12 | int64(x&15)<<8 | int64(z&15)<<4 | int64(y&15))
}

type ClientboundSetChunkCacheCenter struct {
	X codec.VarInt
	Z codec.VarInt
}

func (p *ClientboundSetChunkCacheCenter) Fields() codec.Tuple { return codec.Tuple{&p.X, &p.Z} }

type ClientboundSetDefaultSpawnPosition struct {
	Pos   codec.Position
	Angle codec.Float
}

func (p *ClientboundSetDefaultSpawnPosition) Fields() codec.Tuple { return codec.Tuple{&p.Pos, &p.Angle} }

type ClientboundSetTime struct {
	GameTime    codec.Long
	DayTime     codec.Long
	TickDayTime codec.Boolean
}

func (p *ClientboundSetTime) Fields() codec.Tuple { return codec.Tuple{&p.GameTime, &p.DayTime, &p.TickDayTime} }

type ClientboundStartConfiguration struct{}

func (*ClientboundStartConfiguration) Fields() codec.Tuple { return nil }

type ClientboundSystemChat struct {
	Content codec.Text
	Overlay codec.Boolean
}

func (p *ClientboundSystemChat) Fields() codec.Tuple { return codec.Tuple{&p.Content, &p.Overlay} }

type ServerboundAcceptTeleportation struct {
	TeleportID codec.VarInt
}

func (p *ServerboundAcceptTeleportation) Fields() codec.Tuple { return codec.Tuple{&p.TeleportID} }

// ServerboundChat is an unsigned chat message when Signature is absent.
type ServerboundChat struct {
	Message      codec.String
	Timestamp    codec.Long
	Salt         codec.Long
	Signature    codec.Option[MessageSignature]
	MessageCount codec.VarInt
	Acknowledged Acknowledged
}

func (p *ServerboundChat) Fields() codec.Tuple {
	return codec.Tuple{&p.Message, &p.Timestamp, &p.Salt, &p.Signature, &p.MessageCount, &p.Acknowledged}
}

type ServerboundChunkBatchReceived struct {
	ChunksPerTick codec.Float
}

func (p *ServerboundChunkBatchReceived) Fields() codec.Tuple { return codec.Tuple{&p.ChunksPerTick} }

// Client command actions.
const (
	ClientCommandRespawn = iota
	ClientCommandRequestStats
)

type ServerboundClientCommand struct {
	Action codec.VarInt
}

func (p *ServerboundClientCommand) Fields() codec.Tuple { return codec.Tuple{&p.Action} }

type ServerboundPlayClientInformation struct {
	ClientInformation
}

type ServerboundClientTickEnd struct{}

func (*ServerboundClientTickEnd) Fields() codec.Tuple { return nil }

type ServerboundConfigurationAcknowledged struct{}

func (*ServerboundConfigurationAcknowledged) Fields() codec.Tuple { return nil }

type ServerboundPlayKeepAlive struct {
	ID codec.Long
}

func (p *ServerboundPlayKeepAlive) Fields() codec.Tuple { return codec.Tuple{&p.ID} }

// Movement flags.
const (
	MoveOnGround = 1 << iota
	MoveHorizontalCollision
)

type ServerboundMovePlayerPos struct {
	X, Y, Z codec.Double
	Flags   codec.Byte
}

func (p *ServerboundMovePlayerPos) Fields() codec.Tuple { return codec.Tuple{&p.X, &p.Y, &p.Z, &p.Flags} }

type ServerboundMovePlayerPosRot struct {
	X, Y, Z    codec.Double
	Yaw, Pitch codec.Float
	Flags      codec.Byte
}

func (p *ServerboundMovePlayerPosRot) Fields() codec.Tuple {
	return codec.Tuple{&p.X, &p.Y, &p.Z, &p.Yaw, &p.Pitch, &p.Flags}
}

type ServerboundPlayPingRequest struct {
	Time codec.Long
}

func (p *ServerboundPlayPingRequest) Fields() codec.Tuple { return codec.Tuple{&p.Time} }

type ServerboundPlayerLoaded struct{}

func (*ServerboundPlayerLoaded) Fields() codec.Tuple { return nil }

type ServerboundPlayPong struct {
	ID codec.Int
}

func (p *ServerboundPlayPong) Fields() codec.Tuple { return codec.Tuple{&p.ID} }
