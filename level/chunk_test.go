package level

import (
	"testing"

	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionBlockCount(t *testing.T) {
	s := NewSection(Overworld)
	assert.True(t, s.Empty())
	assert.Equal(t, BlockState(0), s.SetBlock(1, 2, 3, 9))
	assert.Equal(t, int16(1), s.BlockCount)
	assert.Equal(t, BlockState(9), s.SetBlock(1, 2, 3, 10))
	assert.Equal(t, int16(1), s.BlockCount)
	assert.Equal(t, BlockState(10), s.SetBlock(1, 2, 3, 0))
	assert.True(t, s.Empty())

	dim := Overworld
	dim.Air = func(b BlockState) bool { return b == 0 || b == 12 }
	s = NewSection(dim)
	s.SetBlock(0, 0, 0, 12)
	s.SetBlock(0, 0, 1, 13)
	assert.Equal(t, int16(1), s.BlockCount)
	s.BlockCount = 0
	s.Recount()
	assert.Equal(t, int16(1), s.BlockCount)
}

func TestSectionIndexOrder(t *testing.T) {
	s := NewSection(Overworld)
	s.SetBlock(1, 0, 0, 1)
	s.SetBlock(0, 0, 1, 2)
	s.SetBlock(0, 1, 0, 3)
	assert.Equal(t, BlockState(1), s.Blocks.Get(1))
	assert.Equal(t, BlockState(2), s.Blocks.Get(16))
	assert.Equal(t, BlockState(3), s.Blocks.Get(256))

	s.SetBiome(5, 9, 14, 4)
	assert.Equal(t, Biome(4), s.Biomes.Get((2*4+3)*4+1))
	assert.Equal(t, Biome(4), s.Biome(4, 8, 12))
}

func TestFreshChunkIsAir(t *testing.T) {
	c := NewChunk(ChunkPos{}, Overworld)
	require.Len(t, c.Sections, 24)
	for y := Overworld.MinY; y < Overworld.MaxY(); y += 7 {
		for x := 0; x < 16; x += 5 {
			require.Equal(t, BlockState(0), c.Block(x, y, 15-x))
		}
	}
	assert.Zero(t, c.BlockCount())
}

func TestChunkRoundTrip(t *testing.T) {
	c := NewChunk(ChunkPos{X: -2, Z: 5}, Overworld)
	c.SetBlock(-32, -64, 80, 1)
	c.SetBlock(-17, 319, 95, 2)
	c.SetBlock(-20, 0, 88, 3)
	c.Sections[4].SetBiome(0, 0, 0, 3)
	c.Heightmaps.MotionBlocking.Set(0, 1)
	c.Heightmaps.WorldSurface.Set(255, 384)

	data, err := c.Encode()
	require.NoError(t, err)
	hm, err := c.EncodeHeightmaps()
	require.NoError(t, err)

	got, err := DecodeChunk(c.Pos, Overworld, hm, data)
	require.NoError(t, err)
	assert.Equal(t, BlockState(1), got.Block(0, -64, 0))
	assert.Equal(t, BlockState(2), got.Block(15, 319, 15))
	assert.Equal(t, BlockState(3), got.Block(12, 0, 8))
	assert.Equal(t, 3, got.BlockCount())
	assert.Equal(t, Biome(3), got.Biome(0, 0, 0))
	assert.Equal(t, -63, got.Height(got.Heightmaps.MotionBlocking, 0, 0))
	assert.Equal(t, 320, got.Height(got.Heightmaps.WorldSurface, 15, 15))

	again, err := got.Encode()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestChunkOutsideHeight(t *testing.T) {
	c := NewChunk(ChunkPos{}, Overworld)
	assert.Equal(t, BlockState(0), c.SetBlock(0, 320, 0, 1))
	assert.Equal(t, BlockState(0), c.SetBlock(0, -65, 0, 1))
	assert.Equal(t, BlockState(0), c.Block(0, 320, 0))
	assert.Zero(t, c.BlockCount())
}

func TestDecodeChunkErrors(t *testing.T) {
	c := NewChunk(ChunkPos{}, Overworld)
	c.SetBlock(3, 70, 3, 8)
	data, err := c.Encode()
	require.NoError(t, err)

	_, err = DecodeChunk(c.Pos, Overworld, codec.NBT{}, data[:len(data)-1])
	var eob *codec.EndOfBufferError
	assert.ErrorAs(t, err, &eob)

	_, err = DecodeChunk(c.Pos, Overworld, codec.NBT{}, append(data, 0))
	assert.ErrorContains(t, err, "1 bytes after 24 sections")

	nether, ok := BuiltinDimension("the_nether")
	require.True(t, ok)
	_, err = DecodeChunk(c.Pos, nether, codec.NBT{}, data)
	assert.Error(t, err)

	bad, err := codec.NewNBT(heightmapsNBT{MotionBlocking: make([]uint64, 36)})
	require.NoError(t, err)
	_, err = DecodeChunk(c.Pos, Overworld, bad, data)
	var size *StorageSizeError
	assert.ErrorAs(t, err, &size)
}

func TestChunkPosAt(t *testing.T) {
	assert.Equal(t, ChunkPos{X: -1, Z: -2}, ChunkPosAt(-1, -17))
	assert.Equal(t, ChunkPos{X: 0, Z: 1}, ChunkPosAt(15, 16))
	assert.Equal(t, "[-1, -2]", ChunkPosAt(-1, -17).String())
}

func TestDimension(t *testing.T) {
	nether, ok := BuiltinDimension("the_nether")
	require.True(t, ok)
	assert.Equal(t, codec.Identifier("minecraft:the_nether"), nether.Name)
	assert.Equal(t, 16, nether.Sections())
	_, ok = BuiltinDimension("minecraft:moon")
	assert.False(t, ok)

	data, err := codec.NewNBT(struct {
		MinY   int32 `nbt:"min_y"`
		Height int32 `nbt:"height"`
	}{MinY: -32, Height: 256})
	require.NoError(t, err)
	dim := Overworld
	require.NoError(t, dim.ApplyType(data))
	assert.Equal(t, -32, dim.MinY)
	assert.Equal(t, 224, dim.MaxY())

	data, err = codec.NewNBT(struct {
		MinY   int32 `nbt:"min_y"`
		Height int32 `nbt:"height"`
	}{MinY: 0, Height: 100})
	require.NoError(t, err)
	assert.Error(t, dim.ApplyType(data))
}

func TestRegistryBits(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 0, 2: 1, 64: 6, 65: 7, 27914: 15} {
		assert.Equal(t, want, RegistryBits(n), "%d entries", n)
	}
}
