package level

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip[T ID](t *testing.T, c *Container[T]) *Container[T] {
	t.Helper()
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(c.Len()), n)

	out := NewContainer[T](c.Layout(), 0)
	r := bytes.NewReader(buf.Bytes())
	_, err = out.ReadFrom(r)
	require.NoError(t, err)
	require.Zero(t, r.Len())
	return out
}

func TestContainerFresh(t *testing.T) {
	c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
	for i := 0; i < 4096; i++ {
		require.Equal(t, BlockState(0), c.Get(i))
	}
	assert.Equal(t, SinglePalette, c.Kind())
	assert.Equal(t, 0, c.Bits())
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, encodeContainer(t, c))
}

func encodeContainer[T ID](t *testing.T, c *Container[T]) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestBlockPaletteGrowth(t *testing.T) {
	c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
	want := make([]BlockState, 4096)

	steps := []struct {
		distinct int
		bits     int
		kind     PaletteKind
	}{
		{2, 4, VectorPalette},
		{16, 4, VectorPalette},
		{17, 5, VectorPalette},
		{256, 8, VectorPalette},
		{257, 15, GlobalPalette},
	}
	next := 1
	for _, step := range steps {
		for ; next < step.distinct; next++ {
			i := next * 13 % 4096
			prev := c.Set(i, BlockState(next*7))
			assert.Equal(t, want[i], prev)
			want[i] = BlockState(next * 7)
		}
		assert.Equal(t, step.bits, c.Bits(), "%d ids", step.distinct)
		assert.Equal(t, step.kind, c.Kind(), "%d ids", step.distinct)
		for i, v := range want {
			require.Equal(t, v, c.Get(i), "position %d after %d ids", i, step.distinct)
		}

		decoded := roundTrip(t, c)
		assert.Equal(t, c.Bits(), decoded.Bits())
		for i, v := range want {
			require.Equal(t, v, decoded.Get(i))
		}
	}
}

func TestBiomePaletteGrowth(t *testing.T) {
	c := NewContainer[Biome](BiomeLayout(DefaultBiomeBits), 0)
	for id, bits := range []int{0, 1, 2, 2, 3, 3, 3, 3, 7} {
		c.Set(id, Biome(id))
		assert.Equal(t, bits, c.Bits(), "after id %d", id)
	}
	assert.Equal(t, GlobalPalette, c.Kind())
	for id := 0; id < 9; id++ {
		assert.Equal(t, Biome(id), c.Get(id))
	}
	assert.Nil(t, c.Palette())
}

func TestContainerSetSame(t *testing.T) {
	c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 5)
	assert.Equal(t, BlockState(5), c.Set(10, 5))
	assert.Equal(t, SinglePalette, c.Kind())
	assert.Equal(t, []BlockState{5}, c.Palette())
}

func TestContainerGlobalOverflow(t *testing.T) {
	c := NewContainer[Biome](BiomeLayout(4), 0)
	for id := 1; id < 9; id++ {
		c.Set(id, Biome(id))
	}
	require.Equal(t, GlobalPalette, c.Kind())
	c.Set(9, 15)
	assert.Equal(t, Biome(15), c.Get(9))
	assert.PanicsWithValue(t, valueOutOfBounds, func() { c.Set(10, 16) })
}

// packed builds a container on the wire by hand.
func packed(bits byte, palette []int32, longs []uint64) []byte {
	out := []byte{bits}
	if palette != nil {
		out = codec.AppendVarInt(out, int32(len(palette)))
		for _, v := range palette {
			out = codec.AppendVarInt(out, v)
		}
	}
	out = codec.AppendVarInt(out, int32(len(longs)))
	for _, l := range longs {
		out = binary.BigEndian.AppendUint64(out, l)
	}
	return out
}

func TestContainerDecode(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
		_, err := c.ReadFrom(bytes.NewReader([]byte{0x00, 0x09, 0x00}))
		require.NoError(t, err)
		assert.Equal(t, BlockState(9), c.Get(4095))
	})
	t.Run("single with longs", func(t *testing.T) {
		c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
		r := bytes.NewReader([]byte{0x00, 0x09, 0x01, 1, 2, 3, 4, 5, 6, 7, 8})
		_, err := c.ReadFrom(r)
		require.NoError(t, err)
		assert.Zero(t, r.Len())
		assert.Equal(t, BlockState(9), c.Get(0))
	})
	t.Run("narrow vector widened", func(t *testing.T) {
		longs := make([]uint64, 256)
		longs[0] = 1 | 1<<8
		longs[255] = 1 << 60
		c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
		_, err := c.ReadFrom(bytes.NewReader(packed(2, []int32{0, 7}, longs)))
		require.NoError(t, err)
		assert.Equal(t, 4, c.Bits())
		assert.Equal(t, BlockState(7), c.Get(0))
		assert.Equal(t, BlockState(0), c.Get(1))
		assert.Equal(t, BlockState(7), c.Get(2))
		assert.Equal(t, BlockState(7), c.Get(4095))
		assert.Equal(t, []BlockState{0, 7}, c.Palette())
	})
	t.Run("global biomes", func(t *testing.T) {
		longs := make([]uint64, 7)
		longs[0] = 42 | 5<<6
		c := NewContainer[Biome](BiomeLayout(DefaultBiomeBits), 0)
		_, err := c.ReadFrom(bytes.NewReader(packed(6, nil, longs)))
		require.NoError(t, err)
		assert.Equal(t, GlobalPalette, c.Kind())
		assert.Equal(t, Biome(42), c.Get(0))
		assert.Equal(t, Biome(5), c.Get(1))
	})
}

func TestContainerDecodeErrors(t *testing.T) {
	tooMany := make([]int32, 17)
	badIndex := make([]uint64, 256)
	badIndex[3] = 3

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"palette too large", packed(4, tooMany, make([]uint64, 256)), ErrPaletteSize},
		{"index outside palette", packed(4, []int32{0, 1}, badIndex), ErrPaletteIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
			_, err := c.ReadFrom(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, SinglePalette, c.Kind(), "container changed on error")
		})
	}

	t.Run("wrong long count", func(t *testing.T) {
		c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
		_, err := c.ReadFrom(bytes.NewReader(packed(4, []int32{0}, make([]uint64, 255))))
		var size *StorageSizeError
		assert.ErrorAs(t, err, &size)
	})
	t.Run("truncated", func(t *testing.T) {
		c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 0)
		data := packed(4, []int32{0}, make([]uint64, 256))
		_, err := c.ReadFrom(bytes.NewReader(data[:100]))
		var eob *codec.EndOfBufferError
		assert.ErrorAs(t, err, &eob)
	})
}

func TestContainerPaletteOrder(t *testing.T) {
	c := NewContainer[BlockState](BlockLayout(DefaultBlockBits), 1)
	c.Set(5, 3)
	c.Set(6, 2)
	if diff := cmp.Diff([]BlockState{1, 3, 2}, c.Palette()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4094, c.Count(func(b BlockState) bool { return b == 1 }))
}
