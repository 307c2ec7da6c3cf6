// Package level holds chunk columns in the palette-compressed form they
// travel in, and the world of loaded chunks a client keeps.
package level

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/dynamitemc/froglight/protocol/codec"
)

// ChunkPos is the position of a chunk column, in chunks.
type ChunkPos struct {
	X, Z int32
}

// ChunkPosAt returns the column holding block x, z.
func ChunkPosAt(x, z int) ChunkPos { return ChunkPos{X: int32(x >> 4), Z: int32(z >> 4)} }

func (p ChunkPos) String() string { return fmt.Sprintf("[%d, %d]", p.X, p.Z) }

// Heightmaps hold, per column, one above the highest block matching each
// heightmap's test, relative to the bottom of the world.
type Heightmaps struct {
	MotionBlocking *BitStorage
	WorldSurface   *BitStorage
}

type heightmapsNBT struct {
	MotionBlocking []uint64 `nbt:"MOTION_BLOCKING"`
	WorldSurface   []uint64 `nbt:"WORLD_SURFACE"`
}

// BlockEntity is a block entity at world coordinates.
type BlockEntity struct {
	X, Y, Z int
	Type    int32
	Data    codec.NBT
}

// Chunk is a column of sections from MinY to MaxY of its dimension.
type Chunk struct {
	Pos           ChunkPos
	Dim           Dimension
	Sections      []Section
	Heightmaps    Heightmaps
	BlockEntities []BlockEntity
}

func heightmapBits(dim Dimension) int { return bits.Len(uint(dim.Height) + 1) }

// NewChunk returns a chunk of air.
func NewChunk(pos ChunkPos, dim Dimension) *Chunk {
	c := &Chunk{Pos: pos, Dim: dim, Sections: make([]Section, dim.Sections())}
	for i := range c.Sections {
		c.Sections[i] = NewSection(dim)
	}
	c.Heightmaps.MotionBlocking, _ = NewBitStorage(heightmapBits(dim), 16*16, nil)
	c.Heightmaps.WorldSurface, _ = NewBitStorage(heightmapBits(dim), 16*16, nil)
	return c
}

// DecodeChunk builds a chunk from the heightmaps and section data of a
// chunk packet. data must hold exactly one section per 16 blocks of the
// dimension's height.
func DecodeChunk(pos ChunkPos, dim Dimension, heightmaps codec.NBT, data []byte) (*Chunk, error) {
	c := NewChunk(pos, dim)
	if err := c.readHeightmaps(heightmaps); err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)
	for i := range c.Sections {
		if _, err := c.Sections[i].ReadFrom(r); err != nil {
			return nil, fmt.Errorf("level: chunk %s section %d: %w", pos, i, err)
		}
	}
	if r.Len() > 0 {
		return nil, fmt.Errorf("level: chunk %s: %d bytes after %d sections", pos, r.Len(), len(c.Sections))
	}
	return c, nil
}

func (c *Chunk) readHeightmaps(t codec.NBT) error {
	if t.IsEnd() {
		return nil
	}
	var raw heightmapsNBT
	if err := t.Unmarshal(&raw); err != nil {
		return err
	}
	for _, h := range []struct {
		dst  **BitStorage
		data []uint64
	}{
		{&c.Heightmaps.MotionBlocking, raw.MotionBlocking},
		{&c.Heightmaps.WorldSurface, raw.WorldSurface},
	} {
		if h.data == nil {
			continue
		}
		s, err := NewBitStorage(heightmapBits(c.Dim), 16*16, h.data)
		if err != nil {
			return fmt.Errorf("level: chunk %s heightmap: %w", c.Pos, err)
		}
		*h.dst = s
	}
	return nil
}

// Encode returns the section data of the chunk in wire form.
func (c *Chunk) Encode() ([]byte, error) {
	var buf bytes.Buffer
	for i := range c.Sections {
		if _, err := c.Sections[i].WriteTo(&buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// EncodeHeightmaps returns the heightmaps as the NBT compound of a chunk
// packet.
func (c *Chunk) EncodeHeightmaps() (codec.NBT, error) {
	return codec.NewNBT(heightmapsNBT{
		MotionBlocking: c.Heightmaps.MotionBlocking.Raw(),
		WorldSurface:   c.Heightmaps.WorldSurface.Raw(),
	})
}

// Section returns the section holding world height y.
func (c *Chunk) Section(y int) (*Section, bool) {
	i := (y - c.Dim.MinY) >> 4
	if y < c.Dim.MinY || i >= len(c.Sections) {
		return nil, false
	}
	return &c.Sections[i], true
}

// Block returns the block at world coordinates; x and z only use their
// low four bits. Heights outside the dimension are air.
func (c *Chunk) Block(x, y, z int) BlockState {
	s, ok := c.Section(y)
	if !ok {
		return 0
	}
	return s.Block(x, y, z)
}

// SetBlock stores b at world coordinates and returns the previous block.
// Heights outside the dimension are ignored.
func (c *Chunk) SetBlock(x, y, z int, b BlockState) BlockState {
	s, ok := c.Section(y)
	if !ok {
		return 0
	}
	return s.SetBlock(x, y, z, b)
}

func (c *Chunk) Biome(x, y, z int) Biome {
	s, ok := c.Section(y)
	if !ok {
		return 0
	}
	return s.Biome(x&15, y&15, z&15)
}

// Height returns a heightmap value as a world height.
func (c *Chunk) Height(h *BitStorage, x, z int) int {
	return c.Dim.MinY + h.Get(z&15*16+x&15)
}

// BlockCount is the number of non-air blocks in the column.
func (c *Chunk) BlockCount() int {
	n := 0
	for i := range c.Sections {
		n += int(c.Sections[i].BlockCount)
	}
	return n
}
