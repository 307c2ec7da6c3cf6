package client

import (
	"context"
	"fmt"

	"github.com/dynamitemc/froglight/conn"
	"github.com/dynamitemc/froglight/level"
	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/dynamitemc/froglight/protocol/packet"
	"github.com/dynamitemc/froglight/protocol/v769"
)

// chunksPerTick is the chunk rate requested after every batch.
const chunksPerTick = 20

// play handles the play state. It returns nil when the server sends the
// client back to configuration.
func (c *Client) play(ctx context.Context, s *conn.Session) error {
	for {
		p, err := c.next(ctx, s)
		if err != nil {
			return err
		}
		switch p := p.(type) {
		case *v769.ClientboundLogin:
			err = c.enterWorld(p.DimensionType, p.DimensionName)
		case *v769.ClientboundRespawn:
			err = c.enterWorld(p.DimensionType, p.DimensionName)
		case *v769.ClientboundPlayKeepAlive:
			err = s.Send(ctx, &v769.ServerboundPlayKeepAlive{ID: p.ID})
		case *v769.ClientboundPlayPing:
			err = s.Send(ctx, &v769.ServerboundPlayPong{ID: p.ID})
		case *v769.ClientboundPlayerPosition:
			err = c.teleport(ctx, s, p)
		case *v769.ClientboundChunkBatchFinished:
			err = s.Send(ctx, &v769.ServerboundChunkBatchReceived{ChunksPerTick: chunksPerTick})
		case *v769.ClientboundLevelChunkWithLight:
			err = c.loadChunk(p)
		case *v769.ClientboundForgetLevelChunk:
			pos := level.ChunkPos{X: int32(p.X), Z: int32(p.Z)}
			if c.World.Unload(pos) {
				c.Events.Emit(EventChunkUnload, pos)
			}
		case *v769.ClientboundBlockUpdate:
			c.World.SetBlock(p.Pos.X, p.Pos.Y, p.Pos.Z, level.BlockState(p.State))
		case *v769.ClientboundSectionBlocksUpdate:
			sx, sy, sz := p.SectionPos()
			for i := range p.Blocks {
				state, x, y, z := p.Block(i)
				c.World.SetBlock(sx*16+x, sy*16+y, sz*16+z, level.BlockState(state))
			}
		case *v769.ClientboundSystemChat:
			if !p.Overlay {
				c.log.Info("[Chat] %s", p.Content)
			}
			c.Events.Emit(EventChat, p.Content.String(), bool(p.Overlay))
		case *v769.ClientboundPlayDisconnect:
			return &DisconnectError{State: packet.Play, Reason: p.Reason.String()}
		case *v769.ClientboundStartConfiguration:
			c.log.Debug("[Client] Server started a new configuration phase")
			return s.Send(ctx, &v769.ServerboundConfigurationAcknowledged{})
		}
		if err != nil {
			return err
		}
	}
}

// enterWorld drops the chunks of the previous world. The player is reported
// loaded again on the next teleport.
func (c *Client) enterWorld(dimType codec.VarInt, name codec.Identifier) error {
	dim, err := c.registry.dimension(int32(dimType), name)
	if err != nil {
		return err
	}
	c.World.Reset(dim)
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
	c.log.Info("[Client] Joined %s (%d sections from y=%d)", name, dim.Sections(), dim.MinY)
	c.Events.Emit(EventJoin, name, dim)
	return nil
}

// teleport applies a server position, confirms it and echoes the result.
// The first teleport after joining a world also reports the player as
// loaded.
func (c *Client) teleport(ctx context.Context, s *conn.Session, p *v769.ClientboundPlayerPosition) error {
	flags := int32(p.Flags)
	coord := func(flag int32, cur float64, v codec.Double) float64 {
		if flags&flag != 0 {
			return cur + float64(v)
		}
		return float64(v)
	}
	angle := func(flag int32, cur float32, v codec.Float) float32 {
		if flags&flag != 0 {
			return cur + float32(v)
		}
		return float32(v)
	}

	c.mu.Lock()
	pos := c.pos
	pos.X = coord(v769.RelativeX, pos.X, p.X)
	pos.Y = coord(v769.RelativeY, pos.Y, p.Y)
	pos.Z = coord(v769.RelativeZ, pos.Z, p.Z)
	pos.Yaw = angle(v769.RelativeYaw, pos.Yaw, p.Yaw)
	pos.Pitch = angle(v769.RelativePitch, pos.Pitch, p.Pitch)
	c.pos = pos
	first := !c.loaded
	c.loaded = true
	c.mu.Unlock()

	if err := s.Send(ctx, &v769.ServerboundAcceptTeleportation{TeleportID: p.TeleportID}); err != nil {
		return err
	}
	err := s.Send(ctx, &v769.ServerboundMovePlayerPosRot{
		X: codec.Double(pos.X), Y: codec.Double(pos.Y), Z: codec.Double(pos.Z),
		Yaw: codec.Float(pos.Yaw), Pitch: codec.Float(pos.Pitch),
	})
	if err != nil {
		return err
	}
	if first {
		if err := s.Send(ctx, &v769.ServerboundPlayerLoaded{}); err != nil {
			return err
		}
	}
	c.Events.Emit(EventTeleport, pos)
	return nil
}

func (c *Client) loadChunk(p *v769.ClientboundLevelChunkWithLight) error {
	pos := level.ChunkPos{X: int32(p.X), Z: int32(p.Z)}
	chunk, err := level.DecodeChunk(pos, c.World.Dimension(), p.Chunk.Heightmaps, p.Chunk.Data)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	for _, e := range p.Chunk.BlockEntities {
		chunk.BlockEntities = append(chunk.BlockEntities, level.BlockEntity{
			X:    int(pos.X)*16 + e.X(),
			Y:    int(e.Y),
			Z:    int(pos.Z)*16 + e.Z(),
			Type: int32(e.Type),
			Data: e.Data,
		})
	}
	c.World.Load(chunk)
	c.Events.Emit(EventChunkLoad, pos)
	return nil
}
