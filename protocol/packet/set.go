package packet

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/dynamitemc/froglight/protocol/codec"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var ErrUnregisteredPacket = errors.New("packet: not registered in this set")

// Packet is one variant of a packet set. Its fields are encoded in the
// order Fields returns them; the id lives in the Set, not in the packet.
type Packet interface {
	Fields() codec.Tuple
}

// Opaque carries the body of a packet that has an id in the table but no
// typed model.
type Opaque struct {
	ID   int32
	Data []byte
}

func (p *Opaque) Fields() codec.Tuple {
	return codec.Tuple{(*codec.RawBytes)(&p.Data)}
}

// Entry is one row of an id table. Rows with a nil New decode to *Opaque.
type Entry struct {
	ID   int32
	Name string
	New  func() Packet
}

// Set is the closed set of packets of one (version, state, direction).
type Set struct {
	state     State
	direction Direction
	byID      *orderedmap.OrderedMap[int32, Entry]
	byType    map[reflect.Type]int32
}

// NewSet builds a set from its id table. Duplicate ids or packet types are
// programming errors and panic.
func NewSet(state State, direction Direction, entries ...Entry) *Set {
	s := &Set{
		state:     state,
		direction: direction,
		byID:      orderedmap.New[int32, Entry](),
		byType:    make(map[reflect.Type]int32),
	}
	for _, e := range entries {
		if _, dup := s.byID.Get(e.ID); dup {
			panic(fmt.Sprintf("packet: duplicate id 0x%02X in %s", e.ID, s))
		}
		s.byID.Set(e.ID, e)
		if e.New == nil {
			continue
		}
		t := reflect.TypeOf(e.New())
		if _, dup := s.byType[t]; dup {
			panic(fmt.Sprintf("packet: %v registered twice in %s", t, s))
		}
		s.byType[t] = e.ID
	}
	return s
}

func (s *Set) State() State         { return s.state }
func (s *Set) Direction() Direction { return s.direction }

func (s *Set) String() string { return s.state.String() + "/" + s.direction.String() }

// Entries returns the table in id order of registration.
func (s *Set) Entries() []Entry {
	entries := make([]Entry, 0, s.byID.Len())
	for pair := s.byID.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, pair.Value)
	}
	return entries
}

// Lookup returns the table row for id.
func (s *Set) Lookup(id int32) (Entry, bool) { return s.byID.Get(id) }

// ID returns the id of p in this set.
func (s *Set) ID(p Packet) (int32, bool) {
	if o, ok := p.(*Opaque); ok {
		_, known := s.byID.Get(o.ID)
		return o.ID, known
	}
	id, ok := s.byType[reflect.TypeOf(p)]
	return id, ok
}

// Name returns the table name of p, or its Go type when p is not in the set.
func (s *Set) Name(p Packet) string {
	if id, ok := s.ID(p); ok {
		e, _ := s.byID.Get(id)
		return e.Name
	}
	return fmt.Sprintf("%T", p)
}

// Contains reports whether p belongs to this set.
func (s *Set) Contains(p Packet) bool {
	_, ok := s.ID(p)
	return ok
}

// Len returns the encoded size of p, id included.
func (s *Set) Len(p Packet) (int, error) {
	id, ok := s.ID(p)
	if !ok {
		return 0, fmt.Errorf("%w: %T in %s", ErrUnregisteredPacket, p, s)
	}
	return codec.VarIntSize(id) + p.Fields().Len(), nil
}

// Encode writes varint(id) followed by the fields of p.
func (s *Set) Encode(w io.Writer, p Packet) (int64, error) {
	id, ok := s.ID(p)
	if !ok {
		return 0, fmt.Errorf("%w: %T in %s", ErrUnregisteredPacket, p, s)
	}
	n, err := codec.VarInt(id).WriteTo(w)
	if err != nil {
		return n, err
	}
	nn, err := p.Fields().WriteTo(w)
	return n + nn, err
}

// Decode reads varint(id) and the matching packet. An id missing from the
// table is an InvalidEnumError; a failure inside the packet is wrapped in a
// PacketError naming it.
func (s *Set) Decode(r io.Reader) (Packet, int64, error) {
	var id codec.VarInt
	n, err := id.ReadFrom(r)
	if err != nil {
		return nil, n, err
	}
	e, ok := s.byID.Get(int32(id))
	if !ok {
		return nil, n, &codec.InvalidEnumError{Value: int64(id), Type: s.String()}
	}
	var p Packet
	if e.New != nil {
		p = e.New()
	} else {
		p = &Opaque{ID: e.ID}
	}
	nn, err := p.Fields().ReadFrom(r)
	n += nn
	if err != nil {
		return nil, n, &codec.PacketError{ID: e.ID, Name: e.Name, Err: err}
	}
	return p, n, nil
}
