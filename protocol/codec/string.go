package codec

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Tnze/go-mc/chat"
)

const (
	// MaxStringLength is the default limit in characters. The byte length
	// of a string may be up to three times this.
	MaxStringLength = 32767
	// MaxJSONLength is the limit for JSON-in-string fields such as the
	// status response.
	MaxJSONLength = 262144
)

// String is a varint byte length followed by UTF-8 bytes.
type String string

func (s String) WriteTo(w io.Writer) (int64, error) {
	if len(s) > math.MaxInt32 {
		return 0, &TryFromIntError{Value: int64(len(s)), Type: "VarInt"}
	}
	n, err := VarInt(len(s)).WriteTo(w)
	if err != nil {
		return n, err
	}
	nn, err := write(w, []byte(s))
	return n + nn, err
}

func (s String) Len() int { return VarIntSize(int32(len(s))) + len(s) }

func (s *String) ReadFrom(r io.Reader) (int64, error) {
	return s.readMax(r, MaxStringLength)
}

// ReadStringMax reads a string of at most max characters.
func ReadStringMax(r io.Reader, max int) (string, int64, error) {
	var s String
	n, err := s.readMax(r, max)
	return string(s), n, err
}

func (s *String) readMax(r io.Reader, max int) (int64, error) {
	var length VarInt
	n, err := length.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if err := checkLength(r, int(length), max*3); err != nil {
		return n, err
	}
	buf := make([]byte, length)
	nn, err := readFull(r, buf)
	n += int64(nn)
	if err != nil {
		return n, err
	}
	if !utf8.Valid(buf) {
		return n, &Utf8Error{Bytes: buf}
	}
	if max > 0 && utf8.RuneCount(buf) > max {
		return n, ErrLengthOutOfRange
	}
	*s = String(buf)
	return n, nil
}

// Identifier is a namespaced resource key such as "minecraft:stone".
type Identifier string

// DefaultNamespace is assumed for identifiers written without one.
const DefaultNamespace = "minecraft"

func (id Identifier) WriteTo(w io.Writer) (int64, error) { return String(id).WriteTo(w) }
func (id Identifier) Len() int                           { return String(id).Len() }

func (id *Identifier) ReadFrom(r io.Reader) (int64, error) {
	var s String
	n, err := s.ReadFrom(r)
	*id = Identifier(s)
	return n, err
}

// Namespace returns the part before the colon, or DefaultNamespace.
func (id Identifier) Namespace() string {
	if i := strings.IndexByte(string(id), ':'); i >= 0 {
		return string(id[:i])
	}
	return DefaultNamespace
}

// Path returns the part after the colon.
func (id Identifier) Path() string {
	if i := strings.IndexByte(string(id), ':'); i >= 0 {
		return string(id[i+1:])
	}
	return string(id)
}

// Normalize returns the identifier with an explicit namespace.
func (id Identifier) Normalize() Identifier {
	return Identifier(id.Namespace() + ":" + id.Path())
}

// Valid reports whether the identifier only uses the characters the game
// accepts.
func (id Identifier) Valid() bool {
	ns, path := id.Namespace(), id.Path()
	if ns == "" || path == "" {
		return false
	}
	for _, c := range ns {
		if !identChar(c) {
			return false
		}
	}
	for _, c := range path {
		if !identChar(c) && c != '/' {
			return false
		}
	}
	return true
}

func identChar(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-' || c == '.'
}

// JSON is a value carried as a JSON document inside a String.
type JSON[T any] struct {
	Value T
}

func (j JSON[T]) marshal() ([]byte, error) {
	data, err := json.Marshal(j.Value)
	if err != nil {
		return nil, &JSONError{Err: err}
	}
	return data, nil
}

func (j JSON[T]) WriteTo(w io.Writer) (int64, error) {
	data, err := j.marshal()
	if err != nil {
		return 0, err
	}
	return String(data).WriteTo(w)
}

func (j JSON[T]) Len() int {
	data, err := j.marshal()
	if err != nil {
		return 0
	}
	return String(data).Len()
}

func (j *JSON[T]) ReadFrom(r io.Reader) (int64, error) {
	data, n, err := ReadStringMax(r, MaxJSONLength)
	if err != nil {
		return n, err
	}
	if err := json.Unmarshal([]byte(data), &j.Value); err != nil {
		return n, &JSONError{Err: err}
	}
	return n, nil
}

// Chat is a JSON text component, as still used by the login phase.
type Chat = JSON[chat.Message]

// NewChat builds a plain text component.
func NewChat(text string) Chat {
	return Chat{Value: chat.Text(text)}
}
