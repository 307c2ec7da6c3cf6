package codec

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/Tnze/go-mc/nbt"
)

// NBT is a tag in the network form used since 1.20.2: a type byte followed
// by the payload, with no root name. A zero NBT is the end tag, which the
// game uses for "no data".
//
// The payload is kept opaque; Unmarshal decodes it into a Go value.
type NBT struct {
	nbt.RawMessage
}

// NewNBT encodes v as an NBT tag.
func NewNBT(v any) (NBT, error) {
	var buf bytes.Buffer
	if err := nbt.NewEncoder(&buf).Encode(v, ""); err != nil {
		return NBT{}, &NBTError{Err: err}
	}
	var raw nbt.RawMessage
	if _, err := nbt.NewDecoder(&buf).Decode(&raw); err != nil {
		return NBT{}, &NBTError{Err: err}
	}
	return NBT{raw}, nil
}

// IsEnd reports whether the tag is the empty end tag.
func (t NBT) IsEnd() bool { return t.Type == nbt.TagEnd }

// Unmarshal decodes the payload into v.
func (t NBT) Unmarshal(v any) error {
	if t.IsEnd() {
		return &NBTError{Err: errors.New("end tag has no payload")}
	}
	if err := t.RawMessage.Unmarshal(v); err != nil {
		return &NBTError{Err: err}
	}
	return nil
}

func (t NBT) WriteTo(w io.Writer) (int64, error) {
	if t.IsEnd() {
		return write(w, []byte{nbt.TagEnd})
	}
	n, err := write(w, []byte{t.Type})
	if err != nil {
		return n, err
	}
	nn, err := write(w, t.Data)
	return n + nn, err
}

func (t NBT) Len() int {
	if t.IsEnd() {
		return 1
	}
	return 1 + len(t.Data)
}

// ReadFrom needs a reader that can seek, such as *bytes.Reader: the nbt
// decoder may read ahead, so the position is restored to just after the
// tag once its payload size is known.
func (t *NBT) ReadFrom(r io.Reader) (int64, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return 0, &NBTError{Err: errors.New("reader must implement io.Seeker")}
	}
	tagType, err := readByte(r, 0)
	if err != nil {
		return 0, err
	}
	if tagType == nbt.TagEnd {
		t.RawMessage = nbt.RawMessage{Type: nbt.TagEnd}
		return 1, nil
	}
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 1, &IOError{Err: err}
	}
	// Give the decoder the named form it expects: an empty root name.
	named := io.MultiReader(bytes.NewReader([]byte{tagType, 0, 0}), rs)
	var raw nbt.RawMessage
	if _, err := nbt.NewDecoder(named).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 1, &EndOfBufferError{Expected: 1, Got: 0}
		}
		return 1, &NBTError{Err: err}
	}
	if _, err := rs.Seek(start+int64(len(raw.Data)), io.SeekStart); err != nil {
		return 1, &IOError{Err: err}
	}
	t.RawMessage = raw
	return 1 + int64(len(raw.Data)), nil
}

// Text is a text component sent as NBT, the form used by configuration
// and play packets since 1.20.3. A component is either a bare string tag
// or a compound with "text"/"translate" and nested "extra" parts.
type Text struct {
	NBT
}

// NewText builds a plain string component.
func NewText(s string) Text {
	t, err := NewNBT(s)
	if err != nil {
		return Text{}
	}
	return Text{t}
}

type textCompound struct {
	Text      string         `nbt:"text"`
	Translate string         `nbt:"translate"`
	Extra     []textCompound `nbt:"extra"`
}

func (c textCompound) plain(sb *strings.Builder) {
	if c.Text != "" {
		sb.WriteString(c.Text)
	} else {
		sb.WriteString(c.Translate)
	}
	for _, e := range c.Extra {
		e.plain(sb)
	}
}

// String returns the plain text of the component without formatting.
func (t Text) String() string {
	switch t.Type {
	case nbt.TagEnd:
		return ""
	case nbt.TagString:
		var s string
		if err := t.RawMessage.Unmarshal(&s); err == nil {
			return s
		}
	case nbt.TagCompound:
		var c textCompound
		if err := t.RawMessage.Unmarshal(&c); err == nil {
			var sb strings.Builder
			c.plain(&sb)
			return sb.String()
		}
	}
	return "<text component>"
}
