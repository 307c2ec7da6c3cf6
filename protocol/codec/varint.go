package codec

import (
	"io"
)

const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

// VarInt is a 32-bit integer in LEB128 form: seven data bits per byte, the
// high bit set on every byte but the last. Negative values are written as
// their unsigned bit pattern and always take five bytes.
type VarInt int32

// VarLong is the 64-bit form of VarInt, at most ten bytes.
type VarLong int64

// AppendVarInt appends the encoding of v to buf.
func AppendVarInt(buf []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		buf = append(buf, byte(u)|0x80)
		u >>= 7
	}
	return append(buf, byte(u))
}

// AppendVarLong appends the encoding of v to buf.
func AppendVarLong(buf []byte, v int64) []byte {
	u := uint64(v)
	for u >= 0x80 {
		buf = append(buf, byte(u)|0x80)
		u >>= 7
	}
	return append(buf, byte(u))
}

// VarIntSize returns the number of bytes the encoding of v takes.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

// VarLongSize returns the number of bytes the encoding of v takes.
func VarLongSize(v int64) int {
	u := uint64(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

func (v VarInt) WriteTo(w io.Writer) (int64, error) {
	var buf [MaxVarIntLen]byte
	return write(w, AppendVarInt(buf[:0], int32(v)))
}

func (v VarInt) Len() int { return VarIntSize(int32(v)) }

func (v *VarInt) ReadFrom(r io.Reader) (n int64, err error) {
	var u uint32
	for i := 0; ; i++ {
		if i >= MaxVarIntLen {
			return n, ErrVarIntTooBig
		}
		b, err := readByte(r, i)
		if err != nil {
			return n, err
		}
		n++
		u |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	*v = VarInt(u)
	return n, nil
}

func (v VarLong) WriteTo(w io.Writer) (int64, error) {
	var buf [MaxVarLongLen]byte
	return write(w, AppendVarLong(buf[:0], int64(v)))
}

func (v VarLong) Len() int { return VarLongSize(int64(v)) }

func (v *VarLong) ReadFrom(r io.Reader) (n int64, err error) {
	var u uint64
	for i := 0; ; i++ {
		if i >= MaxVarLongLen {
			return n, ErrVarLongTooBig
		}
		b, err := readByte(r, i)
		if err != nil {
			return n, err
		}
		n++
		u |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	*v = VarLong(u)
	return n, nil
}

// readByte reads the next byte of a multi-byte value of which got bytes
// have been read already.
func readByte(r io.Reader, got int) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err == io.EOF {
			return 0, &EndOfBufferError{Expected: got + 1, Got: got}
		} else if err != nil {
			return 0, &IOError{Err: err}
		}
		return b, nil
	}
	var buf [1]byte
	if _, err := readFull(r, buf[:]); err != nil {
		if eob, ok := err.(*EndOfBufferError); ok {
			eob.Expected, eob.Got = got+1, got
		}
		return 0, err
	}
	return buf[0], nil
}
