package codec

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/willf/bitset"
)

// UUID is written as 16 raw bytes, most significant first.
type UUID uuid.UUID

func (u UUID) WriteTo(w io.Writer) (int64, error) { return write(w, u[:]) }
func (u UUID) Len() int                           { return 16 }

func (u *UUID) ReadFrom(r io.Reader) (int64, error) {
	n, err := readFull(r, u[:])
	return int64(n), err
}

func (u UUID) String() string { return uuid.UUID(u).String() }

// Position is a block position packed into a long: 26 bits of X, 26 bits of
// Z and 12 bits of Y.
type Position struct {
	X, Y, Z int
}

func (p Position) pack() int64 {
	return int64(p.X&0x3FFFFFF)<<38 | int64(p.Z&0x3FFFFFF)<<12 | int64(p.Y&0xFFF)
}

func (p Position) WriteTo(w io.Writer) (int64, error) { return Long(p.pack()).WriteTo(w) }
func (p Position) Len() int                           { return 8 }

func (p *Position) ReadFrom(r io.Reader) (int64, error) {
	var v Long
	n, err := v.ReadFrom(r)
	if err != nil {
		return n, err
	}
	p.X = int(int64(v) >> 38)
	p.Y = int(int64(v) << 52 >> 52)
	p.Z = int(int64(v) << 26 >> 38)
	return n, nil
}

func (p Position) String() string { return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z) }

// BitSet is a varint count of longs followed by the longs. Bit i lives in
// long i/64 at position i%64.
type BitSet struct {
	*bitset.BitSet
}

// NewBitSet returns a set able to hold n bits without growing.
func NewBitSet(n uint) BitSet { return BitSet{bitset.New(n)} }

// Has reports whether bit i is set; an empty set has no bits.
func (b BitSet) Has(i uint) bool {
	return b.BitSet != nil && b.Test(i)
}

func (b BitSet) words() []uint64 {
	if b.BitSet == nil {
		return nil
	}
	words := b.Bytes()
	for len(words) > 0 && words[len(words)-1] == 0 {
		words = words[:len(words)-1]
	}
	return words
}

func (b BitSet) WriteTo(w io.Writer) (int64, error) {
	words := b.words()
	n, err := VarInt(len(words)).WriteTo(w)
	if err != nil {
		return n, err
	}
	for _, word := range words {
		nn, err := Long(word).WriteTo(w)
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (b BitSet) Len() int {
	words := b.words()
	return VarIntSize(int32(len(words))) + 8*len(words)
}

func (b *BitSet) ReadFrom(r io.Reader) (int64, error) {
	var count VarInt
	n, err := count.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if err := checkLength(r, int(count)*8, 0); err != nil {
		return n, err
	}
	words := make([]uint64, count)
	for i := range words {
		var v Long
		nn, err := v.ReadFrom(r)
		n += nn
		if err != nil {
			return n, &ListError{Index: i, Total: int(count), Err: err}
		}
		words[i] = uint64(v)
	}
	b.BitSet = bitset.From(words)
	return n, nil
}
