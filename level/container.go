package level

import (
	"errors"
	"fmt"
	"io"

	"github.com/dynamitemc/froglight/protocol/codec"
)

var (
	ErrPaletteSize  = errors.New("level: palette too large")
	ErrPaletteIndex = errors.New("level: stored value outside palette")
)

// ID is a block state or biome id.
type ID interface {
	~int32
}

// Layout describes one flavour of container.
type Layout struct {
	// Size is the number of positions.
	Size int
	// MinBits is the narrowest vector width. Narrower wire widths are
	// widened to it.
	MinBits int
	// MaxVectorBits is the widest width that still uses a vector palette.
	MaxVectorBits int
	// GlobalBits is the width used once a container outgrows its vector
	// palette.
	GlobalBits int
}

// BlockLayout is the layout of block states in a section: 16x16x16
// positions, vector palettes of 4 to 8 bits.
func BlockLayout(globalBits int) Layout {
	return Layout{Size: 16 * 16 * 16, MinBits: 4, MaxVectorBits: 8, GlobalBits: globalBits}
}

// BiomeLayout is the layout of biomes in a section: 4x4x4 positions,
// vector palettes of 1 to 3 bits.
func BiomeLayout(globalBits int) Layout {
	return Layout{Size: 4 * 4 * 4, MinBits: 1, MaxVectorBits: 3, GlobalBits: globalBits}
}

// storageBits is the width stored for a wire width of n.
func (l Layout) storageBits(n int) int {
	switch {
	case n == 0:
		return 0
	case n <= l.MaxVectorBits:
		return max(n, l.MinBits)
	default:
		return n
	}
}

func (l Layout) newPalette(bits int) palette {
	switch {
	case bits == 0:
		return new(singlePalette)
	case bits <= l.MaxVectorBits:
		return newVectorPalette(1 << bits)
	default:
		return globalPalette{bits: bits}
	}
}

// Container is a palette plus the packed array of one section's blocks or
// biomes. It is not safe for concurrent use.
type Container[T ID] struct {
	layout  Layout
	bits    int
	palette palette
	data    *BitStorage
}

// NewContainer returns a container holding v at every position.
func NewContainer[T ID](layout Layout, v T) *Container[T] {
	data, _ := NewBitStorage(0, layout.Size, nil)
	return &Container[T]{
		layout:  layout,
		palette: &singlePalette{v: int32(v)},
		data:    data,
	}
}

func (c *Container[T]) Layout() Layout    { return c.layout }
func (c *Container[T]) Bits() int         { return c.bits }
func (c *Container[T]) Kind() PaletteKind { return c.palette.kind() }

// Palette returns the ids of a single or vector palette in index order,
// and nil for a global one.
func (c *Container[T]) Palette() []T {
	raw := c.palette.export()
	if raw == nil {
		return nil
	}
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = T(v)
	}
	return out
}

// Get returns the id at position i.
func (c *Container[T]) Get(i int) T {
	if i < 0 || i >= c.layout.Size {
		panic(indexOutOfBounds)
	}
	v, _ := c.palette.value(c.data.Get(i))
	return T(v)
}

// Set stores v at position i and returns the previous id. When v does not
// fit the palette the container is widened and every position repacked.
func (c *Container[T]) Set(i int, v T) (prev T) {
	prev = c.Get(i)
	if prev == v {
		return prev
	}
	id, ok := c.palette.id(int32(v))
	for !ok {
		if c.palette.kind() == GlobalPalette {
			panic(valueOutOfBounds)
		}
		c.grow()
		id, ok = c.palette.id(int32(v))
	}
	c.data.Set(i, id)
	return prev
}

func (c *Container[T]) grow() {
	bits := c.layout.GlobalBits
	switch {
	case c.bits == 0:
		bits = c.layout.storageBits(1)
	case c.bits < c.layout.MaxVectorBits:
		bits = c.bits + 1
	}
	p := c.layout.newPalette(bits)
	if bits > c.layout.MaxVectorBits {
		p = globalPalette{bits: bits}
	}
	data, err := NewBitStorage(bits, c.layout.Size, nil)
	if err != nil {
		panic(err)
	}
	for i := 0; i < c.layout.Size; i++ {
		id, ok := p.id(int32(c.Get(i)))
		if !ok {
			panic(valueOutOfBounds)
		}
		data.Set(i, id)
	}
	c.bits, c.palette, c.data = bits, p, data
}

// Count returns the number of positions whose id satisfies f.
func (c *Container[T]) Count(f func(T) bool) int {
	if c.palette.kind() == SinglePalette {
		v, _ := c.palette.value(0)
		if f(T(v)) {
			return c.layout.Size
		}
		return 0
	}
	n := 0
	for i := 0; i < c.layout.Size; i++ {
		if f(c.Get(i)) {
			n++
		}
	}
	return n
}

// ReadFrom decodes u8(bits) | palette | varint(longs) | longs. A single
// palette may still carry longs; they are skipped.
func (c *Container[T]) ReadFrom(r io.Reader) (int64, error) {
	var wire codec.UnsignedByte
	n, err := wire.ReadFrom(r)
	if err != nil {
		return n, err
	}
	bits := c.layout.storageBits(int(wire))
	p := c.layout.newPalette(bits)
	nn, err := p.ReadFrom(r)
	n += nn
	if err != nil {
		return n, err
	}
	data, err := NewBitStorage(bits, c.layout.Size, nil)
	if err != nil {
		return n, err
	}
	if bits == 0 {
		nn, err = skipLongs(r)
	} else {
		nn, err = data.ReadFrom(r)
	}
	n += nn
	if err != nil {
		return n, err
	}
	if p.kind() == VectorPalette {
		for i := 0; i < c.layout.Size; i++ {
			if v := data.Get(i); v >= len(p.export()) {
				return n, fmt.Errorf("%w: %d at %d, palette has %d", ErrPaletteIndex, v, i, len(p.export()))
			}
		}
	}
	c.bits, c.palette, c.data = bits, p, data
	return n, nil
}

func skipLongs(r io.Reader) (int64, error) {
	var count codec.VarInt
	n, err := count.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if count < 0 {
		return n, &codec.TryFromIntError{Value: int64(count), Type: "long count"}
	}
	var v codec.Long
	for i := 0; i < int(count); i++ {
		nn, err := v.ReadFrom(r)
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *Container[T]) WriteTo(w io.Writer) (int64, error) {
	n, err := codec.UnsignedByte(c.bits).WriteTo(w)
	if err != nil {
		return n, err
	}
	nn, err := c.palette.WriteTo(w)
	n += nn
	if err != nil {
		return n, err
	}
	nn, err = c.data.WriteTo(w)
	return n + nn, err
}

func (c *Container[T]) Len() int {
	return 1 + c.palette.Len() + c.data.EncodedLen()
}
