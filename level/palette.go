package level

import (
	"fmt"
	"io"

	"github.com/dynamitemc/froglight/protocol/codec"
)

// PaletteKind is how a container maps stored values to ids.
type PaletteKind uint8

const (
	// SinglePalette holds one id for every position and stores nothing.
	SinglePalette PaletteKind = iota
	// VectorPalette stores indices into a short list of ids.
	VectorPalette
	// GlobalPalette stores the ids themselves.
	GlobalPalette
)

func (k PaletteKind) String() string {
	switch k {
	case SinglePalette:
		return "single"
	case VectorPalette:
		return "vector"
	case GlobalPalette:
		return "global"
	default:
		return fmt.Sprintf("palette(%d)", uint8(k))
	}
}

type palette interface {
	codec.Field
	kind() PaletteKind
	// id returns the stored value for v, adding v if there is room. It
	// reports false when v does not fit.
	id(v int32) (int, bool)
	value(i int) (int32, bool)
	export() []int32
}

type singlePalette struct {
	v int32
}

func (*singlePalette) kind() PaletteKind { return SinglePalette }

func (s *singlePalette) id(v int32) (int, bool) { return 0, v == s.v }

func (s *singlePalette) value(i int) (int32, bool) { return s.v, i == 0 }

func (s *singlePalette) export() []int32 { return []int32{s.v} }

func (s *singlePalette) WriteTo(w io.Writer) (int64, error) { return codec.VarInt(s.v).WriteTo(w) }
func (s *singlePalette) Len() int                           { return codec.VarInt(s.v).Len() }

func (s *singlePalette) ReadFrom(r io.Reader) (int64, error) {
	return (*codec.VarInt)(&s.v).ReadFrom(r)
}

// vectorPalette holds up to capacity ids, capacity being 1<<bits of the
// container.
type vectorPalette struct {
	values   []int32
	ids      map[int32]int
	capacity int
}

func newVectorPalette(capacity int) *vectorPalette {
	return &vectorPalette{
		values:   make([]int32, 0, capacity),
		ids:      make(map[int32]int, capacity),
		capacity: capacity,
	}
}

func (*vectorPalette) kind() PaletteKind { return VectorPalette }

func (p *vectorPalette) id(v int32) (int, bool) {
	if i, ok := p.ids[v]; ok {
		return i, true
	}
	if len(p.values) == p.capacity {
		return 0, false
	}
	p.ids[v] = len(p.values)
	p.values = append(p.values, v)
	return len(p.values) - 1, true
}

func (p *vectorPalette) value(i int) (int32, bool) {
	if i < 0 || i >= len(p.values) {
		return 0, false
	}
	return p.values[i], true
}

func (p *vectorPalette) export() []int32 { return p.values }

func (p *vectorPalette) WriteTo(w io.Writer) (int64, error) {
	n, err := codec.VarInt(len(p.values)).WriteTo(w)
	if err != nil {
		return n, err
	}
	for _, v := range p.values {
		nn, err := codec.VarInt(v).WriteTo(w)
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (p *vectorPalette) Len() int {
	n := codec.VarIntSize(int32(len(p.values)))
	for _, v := range p.values {
		n += codec.VarIntSize(v)
	}
	return n
}

func (p *vectorPalette) ReadFrom(r io.Reader) (int64, error) {
	var count, v codec.VarInt
	n, err := count.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if count < 0 || int(count) > p.capacity {
		return n, fmt.Errorf("%w: %d entries in a palette of %d", ErrPaletteSize, count, p.capacity)
	}
	p.values = p.values[:0]
	clear(p.ids)
	for i := 0; i < int(count); i++ {
		nn, err := v.ReadFrom(r)
		n += nn
		if err != nil {
			return n, &codec.ListError{Index: i, Total: int(count), Err: err}
		}
		p.values = append(p.values, int32(v))
		if _, dup := p.ids[int32(v)]; !dup {
			p.ids[int32(v)] = i
		}
	}
	return n, nil
}

// globalPalette stores ids directly, as wide as bits allows.
type globalPalette struct {
	bits int
}

func (globalPalette) kind() PaletteKind { return GlobalPalette }

func (g globalPalette) id(v int32) (int, bool) {
	return int(v), v >= 0 && int64(v) < 1<<g.bits
}

func (globalPalette) value(i int) (int32, bool) { return int32(i), true }

func (globalPalette) export() []int32 { return nil }

func (globalPalette) WriteTo(io.Writer) (int64, error)  { return 0, nil }
func (globalPalette) Len() int                          { return 0 }
func (globalPalette) ReadFrom(io.Reader) (int64, error) { return 0, nil }
