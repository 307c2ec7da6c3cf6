package level

import (
	"fmt"
	"io"
	"math"

	"github.com/dynamitemc/froglight/protocol/codec"
)

const (
	indexOutOfBounds = "level: index out of bounds"
	valueOutOfBounds = "level: value out of bounds"
)

// BitStorage is the packed array used by containers and heightmaps: a
// []uintN whose N is given by bits. Values never span two longs and are
// filled from the low bits of each long upwards.
type BitStorage struct {
	data []uint64
	mask uint64

	bits, length  int
	valuesPerLong int
}

// NewBitStorage returns storage for length values of the given width. data
// is optional and copied; its size must match.
func NewBitStorage(bits, length int, data []uint64) (*BitStorage, error) {
	b := &BitStorage{length: length}
	if err := b.resize(bits); err != nil {
		return nil, err
	}
	if data != nil {
		if len(data) != len(b.data) {
			return nil, &StorageSizeError{Bits: bits, Got: len(data), Want: len(b.data)}
		}
		copy(b.data, data)
	}
	return b, nil
}

func (b *BitStorage) resize(bits int) error {
	if bits < 0 || bits > 32 {
		return fmt.Errorf("level: %d bits per value", bits)
	}
	b.bits = bits
	if bits == 0 {
		b.mask, b.valuesPerLong, b.data = 0, 0, nil
		return nil
	}
	b.mask = 1<<bits - 1
	b.valuesPerLong = 64 / bits
	b.data = make([]uint64, storageSize(bits, b.length))
	return nil
}

// storageSize is the number of longs holding length values of the given
// width.
func storageSize(bits, length int) int {
	if bits == 0 {
		return 0
	}
	valuesPerLong := 64 / bits
	return (length + valuesPerLong - 1) / valuesPerLong
}

// StorageSizeError is returned when a packed array has the wrong number of
// longs for its width.
type StorageSizeError struct {
	Bits      int
	Got, Want int
}

func (e *StorageSizeError) Error() string {
	return fmt.Sprintf("level: %d longs for %d bits per value, want %d", e.Got, e.Bits, e.Want)
}

func (b *BitStorage) index(i int) (c, offset int) {
	c = i / b.valuesPerLong
	offset = (i - c*b.valuesPerLong) * b.bits
	return
}

func (b *BitStorage) check(i, v int) {
	if v < 0 || uint64(v) > b.mask {
		panic(valueOutOfBounds)
	}
	if i < 0 || i >= b.length {
		panic(indexOutOfBounds)
	}
}

// Swap sets [i] to v and returns the previous value.
func (b *BitStorage) Swap(i, v int) (old int) {
	if b.valuesPerLong == 0 {
		return 0
	}
	b.check(i, v)
	c, offset := b.index(i)
	l := b.data[c]
	old = int(l >> offset & b.mask)
	b.data[c] = l&(b.mask<<offset^math.MaxUint64) | uint64(v)<<offset
	return old
}

// Set sets [i] to v.
func (b *BitStorage) Set(i, v int) {
	if b.valuesPerLong == 0 {
		return
	}
	b.check(i, v)
	c, offset := b.index(i)
	b.data[c] = b.data[c]&(b.mask<<offset^math.MaxUint64) | uint64(v)<<offset
}

// Get returns [i].
func (b *BitStorage) Get(i int) int {
	if b.valuesPerLong == 0 {
		return 0
	}
	if i < 0 || i >= b.length {
		panic(indexOutOfBounds)
	}
	c, offset := b.index(i)
	return int(b.data[c] >> offset & b.mask)
}

func (b *BitStorage) Len() int  { return b.length }
func (b *BitStorage) Bits() int { return b.bits }

// Raw returns the backing longs.
func (b *BitStorage) Raw() []uint64 {
	if b == nil {
		return []uint64{}
	}
	return b.data
}

// ReadFrom reads varint(count) and count big-endian longs. The count must
// match the current width.
func (b *BitStorage) ReadFrom(r io.Reader) (int64, error) {
	var count codec.VarInt
	n, err := count.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if want := storageSize(b.bits, b.length); int(count) != want {
		return n, &StorageSizeError{Bits: b.bits, Got: int(count), Want: want}
	}
	var v codec.Long
	for i := range b.data {
		nn, err := v.ReadFrom(r)
		n += nn
		if err != nil {
			return n, err
		}
		b.data[i] = uint64(v)
	}
	return n, nil
}

func (b *BitStorage) WriteTo(w io.Writer) (int64, error) {
	if b == nil {
		return codec.VarInt(0).WriteTo(w)
	}
	n, err := codec.VarInt(len(b.data)).WriteTo(w)
	if err != nil {
		return n, err
	}
	for _, v := range b.data {
		nn, err := codec.Long(v).WriteTo(w)
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// EncodedLen is the size of the wire form.
func (b *BitStorage) EncodedLen() int {
	if b == nil {
		return 1
	}
	return codec.VarIntSize(int32(len(b.data))) + 8*len(b.data)
}
