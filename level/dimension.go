package level

import (
	"fmt"
	"math/bits"

	"github.com/dynamitemc/froglight/protocol/codec"
)

// Dimension is what a chunk needs to know about the world it belongs to.
type Dimension struct {
	Name   codec.Identifier
	MinY   int
	Height int
	// BlockBits and BiomeBits are the global palette widths, derived from
	// the registry sizes.
	BlockBits int
	BiomeBits int
	Air       AirFunc
}

// Defaults for protocol 769: 27914 block states, 65 biomes.
const (
	DefaultBlockBits = 15
	DefaultBiomeBits = 7
)

var builtinDimensions = map[codec.Identifier][2]int{
	"minecraft:overworld":       {-64, 384},
	"minecraft:overworld_caves": {-64, 384},
	"minecraft:the_nether":      {0, 256},
	"minecraft:the_end":         {0, 256},
}

// BuiltinDimension returns the vanilla layout of a dimension type.
func BuiltinDimension(name codec.Identifier) (Dimension, bool) {
	h, ok := builtinDimensions[name.Normalize()]
	if !ok {
		return Dimension{}, false
	}
	return Dimension{
		Name:      name.Normalize(),
		MinY:      h[0],
		Height:    h[1],
		BlockBits: DefaultBlockBits,
		BiomeBits: DefaultBiomeBits,
	}, true
}

// Overworld is the vanilla overworld.
var Overworld, _ = BuiltinDimension("minecraft:overworld")

// ApplyType reads min_y and height from a dimension_type registry entry.
func (d *Dimension) ApplyType(data codec.NBT) error {
	var t struct {
		MinY   int32 `nbt:"min_y"`
		Height int32 `nbt:"height"`
	}
	if err := data.Unmarshal(&t); err != nil {
		return err
	}
	if t.Height <= 0 || t.Height%16 != 0 || t.MinY%16 != 0 {
		return fmt.Errorf("level: dimension height %d at %d is not whole sections", t.Height, t.MinY)
	}
	d.MinY, d.Height = int(t.MinY), int(t.Height)
	return nil
}

// Sections is the number of sections in a chunk column.
func (d Dimension) Sections() int { return d.Height / 16 }

// MaxY is one above the highest block.
func (d Dimension) MaxY() int { return d.MinY + d.Height }

// RegistryBits is the global palette width for a registry of n entries.
func RegistryBits(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}
