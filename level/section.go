package level

import (
	"io"

	"github.com/dynamitemc/froglight/protocol/codec"
)

// BlockState is a global block state id.
type BlockState int32

// Biome is an index into the biome registry of the current connection.
type Biome int32

// AirFunc reports whether a block state is air. Air is left out of a
// section's block count.
type AirFunc func(BlockState) bool

// OnlyAir treats state 0, minecraft:air, as the only air.
func OnlyAir(s BlockState) bool { return s == 0 }

func blockIndex(x, y, z int) int { return (y&15*16+z&15)*16 + x&15 }
func biomeIndex(x, y, z int) int { return (y&3*4+z&3)*4 + x&3 }

// Section is a 16x16x16 cube of blocks with biomes at a quarter of the
// resolution.
type Section struct {
	// BlockCount is the number of non-air blocks.
	BlockCount int16
	Blocks     *Container[BlockState]
	Biomes     *Container[Biome]

	air AirFunc
}

// NewSection returns a section of air in biome 0.
func NewSection(dim Dimension) Section {
	return Section{
		Blocks: NewContainer[BlockState](BlockLayout(dim.BlockBits), 0),
		Biomes: NewContainer[Biome](BiomeLayout(dim.BiomeBits), 0),
		air:    dim.Air,
	}
}

func (s *Section) isAir(b BlockState) bool {
	if s.air == nil {
		return OnlyAir(b)
	}
	return s.air(b)
}

// Block returns the block at section-relative coordinates. Only the low
// four bits of each coordinate are used.
func (s *Section) Block(x, y, z int) BlockState { return s.Blocks.Get(blockIndex(x, y, z)) }

// SetBlock stores b and returns the previous block, keeping BlockCount up
// to date.
func (s *Section) SetBlock(x, y, z int, b BlockState) BlockState {
	prev := s.Blocks.Set(blockIndex(x, y, z), b)
	if !s.isAir(prev) {
		s.BlockCount--
	}
	if !s.isAir(b) {
		s.BlockCount++
	}
	return prev
}

// Biome returns the biome around section-relative block coordinates.
func (s *Section) Biome(x, y, z int) Biome { return s.Biomes.Get(biomeIndex(x>>2, y>>2, z>>2)) }

func (s *Section) SetBiome(x, y, z int, b Biome) Biome {
	return s.Biomes.Set(biomeIndex(x>>2, y>>2, z>>2), b)
}

// Recount recomputes BlockCount from the stored blocks.
func (s *Section) Recount() {
	s.BlockCount = int16(s.Blocks.Count(func(b BlockState) bool { return !s.isAir(b) }))
}

// Empty reports whether the section holds only air.
func (s *Section) Empty() bool { return s.BlockCount == 0 }

func (s *Section) WriteTo(w io.Writer) (int64, error) {
	return codec.Tuple{codec.Short(s.BlockCount), s.Blocks, s.Biomes}.WriteTo(w)
}

func (s *Section) Len() int {
	return 2 + s.Blocks.Len() + s.Biomes.Len()
}

func (s *Section) ReadFrom(r io.Reader) (int64, error) {
	return codec.Tuple{(*codec.Short)(&s.BlockCount), s.Blocks, s.Biomes}.ReadFrom(r)
}
