package client

import (
	"context"
	"fmt"

	"github.com/dynamitemc/froglight/conn"
	"github.com/dynamitemc/froglight/level"
	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/dynamitemc/froglight/protocol/packet"
	"github.com/dynamitemc/froglight/protocol/v769"
	"go.opentelemetry.io/otel/attribute"
)

// Brand is announced on the minecraft:brand channel.
const Brand = "froglight"

// configure runs one configuration phase, from the first packet after
// login (or after a configuration acknowledgement) until the server
// finishes it.
func (c *Client) configure(ctx context.Context, s *conn.Session) (err error) {
	ctx, span := c.tracer.Start(ctx, "client.configuration")
	defer func() { endSpan(span, err) }()

	if err := s.Send(ctx, &v769.ServerboundConfigClientInformation{ClientInformation: c.information()}); err != nil {
		return err
	}
	brand := append(codec.AppendVarInt(nil, int32(len(Brand))), Brand...)
	if err := s.Send(ctx, &v769.ServerboundCustomPayload{Channel: "minecraft:brand", Data: brand}); err != nil {
		return err
	}

	for {
		p, err := c.next(ctx, s)
		if err != nil {
			return err
		}
		switch p := p.(type) {
		case *v769.ClientboundFinishConfiguration:
			span.SetAttributes(attribute.Int("registry.dimension_types", len(c.registry.dimensions)))
			return s.Send(ctx, &v769.ServerboundFinishConfiguration{})
		case *v769.ClientboundConfigKeepAlive:
			err = s.Send(ctx, &v769.ServerboundConfigKeepAlive{ID: p.ID})
		case *v769.ClientboundConfigPing:
			err = s.Send(ctx, &v769.ServerboundConfigPong{ID: p.ID})
		case *v769.ClientboundSelectKnownPacks:
			err = s.Send(ctx, &v769.ServerboundSelectKnownPacks{Packs: p.Packs})
		case *v769.ClientboundRegistryData:
			err = c.registry.apply(p)
		case *v769.ClientboundResourcePackPush:
			err = c.acceptPack(ctx, s, p)
		case *v769.ClientboundCookieRequest:
			err = s.Send(ctx, &v769.ServerboundCookieResponse{Key: p.Key, Payload: c.cookie(p.Key)})
		case *v769.ClientboundStoreCookie:
			c.storeCookie(p.Key, p.Payload)
		case *v769.ClientboundCustomPayload:
			c.log.Debug("[Client] Custom payload on %s (%d bytes)", p.Channel, len(p.Data))
		case *v769.ClientboundConfigDisconnect:
			return &DisconnectError{State: packet.Configuration, Reason: p.Reason.String()}
		case *v769.ClientboundTransfer:
			return &TransferError{Host: string(p.Host), Port: int(p.Port)}
		}
		if err != nil {
			return err
		}
	}
}

func (c *Client) information() v769.ClientInformation {
	settings := c.Config.Client
	hand := v769.RightHand
	if settings.MainHand == "left" {
		hand = v769.LeftHand
	}
	return v769.ClientInformation{
		Locale:              codec.String(settings.Locale),
		ViewDistance:        codec.Byte(settings.ViewDistance),
		ChatMode:            v769.ChatEnabled,
		ChatColors:          codec.Boolean(settings.ChatColors),
		DisplayedSkinParts:  0x7F,
		MainHand:            codec.VarInt(hand),
		AllowServerListings: true,
	}
}

// acceptPack reports a pushed resource pack as accepted and loaded
// without downloading it.
func (c *Client) acceptPack(ctx context.Context, s *conn.Session, p *v769.ClientboundResourcePackPush) error {
	c.log.Debug("[Client] Accepting resource pack %s from %s", p.ID, p.URL)
	for _, result := range []codec.VarInt{v769.PackAccepted, v769.PackDownloaded, v769.PackLoaded} {
		if err := s.Send(ctx, &v769.ServerboundResourcePack{ID: p.ID, Result: result}); err != nil {
			return err
		}
	}
	return nil
}

// registries keeps what the client needs from the synchronized
// registries: the dimension types by id and the biome count.
type registries struct {
	dimensions []level.Dimension
	biomes     int
	blocks     *level.BlockRegistry
}

func (r *registries) apply(p *v769.ClientboundRegistryData) error {
	switch p.Registry.Normalize() {
	case "minecraft:dimension_type":
		dims := make([]level.Dimension, 0, len(p.Entries))
		for _, e := range p.Entries {
			d, builtin := level.BuiltinDimension(e.ID)
			if !builtin {
				d = level.Dimension{
					Name:      e.ID.Normalize(),
					BlockBits: level.DefaultBlockBits,
					BiomeBits: level.DefaultBiomeBits,
				}
			}
			switch {
			case e.Data.Has:
				if err := d.ApplyType(e.Data.Value); err != nil {
					return fmt.Errorf("client: dimension type %s: %w", e.ID, err)
				}
			case !builtin:
				return fmt.Errorf("client: dimension type %s has no data", e.ID)
			}
			dims = append(dims, d)
		}
		r.dimensions = dims
	case "minecraft:worldgen/biome":
		r.biomes = len(p.Entries)
	}
	return nil
}

// dimension resolves the dimension type of a play login or respawn.
// Unknown ids fall back to the vanilla type of the same name.
func (r *registries) dimension(id int32, name codec.Identifier) (level.Dimension, error) {
	var d level.Dimension
	if id >= 0 && int(id) < len(r.dimensions) {
		d = r.dimensions[id]
	} else {
		builtin, ok := level.BuiltinDimension(name)
		if !ok {
			return d, fmt.Errorf("client: unknown dimension type %d (%s)", id, name)
		}
		d = builtin
	}
	return r.complete(d), nil
}

// complete sizes the global palettes of d from the registries known so far.
func (r *registries) complete(d level.Dimension) level.Dimension {
	if r.biomes > 0 {
		d.BiomeBits = level.RegistryBits(r.biomes)
	}
	if r.blocks != nil {
		d.BlockBits = r.blocks.Bits()
		d.Air = r.blocks.IsAir
	}
	return d
}
