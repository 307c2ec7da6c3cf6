package codec

import (
	"errors"
	"fmt"
)

var (
	ErrVarIntTooBig     = errors.New("codec: varint is too big")
	ErrVarLongTooBig    = errors.New("codec: varlong is too big")
	ErrLengthOutOfRange = errors.New("codec: length out of range")
)

// IOError wraps a failure of the underlying reader or writer.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return "codec: io: " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }

// JSONError wraps a failure of a JSON-in-string field.
type JSONError struct {
	Err error
}

func (e *JSONError) Error() string { return "codec: json: " + e.Err.Error() }
func (e *JSONError) Unwrap() error { return e.Err }

// NBTError wraps a failure of an NBT field.
type NBTError struct {
	Err error
}

func (e *NBTError) Error() string { return "codec: nbt: " + e.Err.Error() }
func (e *NBTError) Unwrap() error { return e.Err }

// Utf8Error is returned for strings whose bytes are not valid UTF-8.
type Utf8Error struct {
	Bytes []byte
}

func (e *Utf8Error) Error() string {
	return fmt.Sprintf("codec: invalid utf-8 in %d byte string", len(e.Bytes))
}

// EndOfBufferError is returned when the input ends before a value is
// complete.
type EndOfBufferError struct {
	Expected int
	Got      int
}

func (e *EndOfBufferError) Error() string {
	return fmt.Sprintf("codec: end of buffer, expected %d bytes but got %d", e.Expected, e.Got)
}

// ListError records which element of a collection failed to decode.
type ListError struct {
	Index int
	Total int
	Err   error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("codec: list element %d of %d: %v", e.Index, e.Total, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// InvalidBoolError is returned for a boolean byte other than 0 or 1.
type InvalidBoolError struct {
	Byte byte
}

func (e *InvalidBoolError) Error() string {
	return fmt.Sprintf("codec: invalid boolean byte 0x%02x", e.Byte)
}

// InvalidEnumError is returned when a discriminant has no matching variant.
type InvalidEnumError struct {
	Value int64
	Type  string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("codec: invalid value %d for %s", e.Value, e.Type)
}

// PacketError records which packet failed to decode.
type PacketError struct {
	ID   int32
	Name string
	Err  error
}

func (e *PacketError) Error() string {
	return fmt.Sprintf("codec: packet 0x%02X (%s): %v", e.ID, e.Name, e.Err)
}

func (e *PacketError) Unwrap() error { return e.Err }

// TryFromIntError is returned when a length or value does not fit the wire
// representation it must be written as.
type TryFromIntError struct {
	Value int64
	Type  string
}

func (e *TryFromIntError) Error() string {
	return fmt.Sprintf("codec: %d does not fit in %s", e.Value, e.Type)
}
