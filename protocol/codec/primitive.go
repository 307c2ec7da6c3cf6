package codec

import (
	"encoding/binary"
	"io"
	"math"
)

type (
	Boolean       bool
	Byte          int8
	UnsignedByte  uint8
	Short         int16
	UnsignedShort uint16
	Int           int32
	Long          int64
	Float         float32
	Double        float64
	// Angle is a rotation in steps of 1/256 of a full turn.
	Angle uint8
)

func (b Boolean) WriteTo(w io.Writer) (int64, error) {
	if b {
		return write(w, []byte{1})
	}
	return write(w, []byte{0})
}

func (b Boolean) Len() int { return 1 }

func (b *Boolean) ReadFrom(r io.Reader) (int64, error) {
	v, err := readByte(r, 0)
	if err != nil {
		return 0, err
	}
	switch v {
	case 0:
		*b = false
	case 1:
		*b = true
	default:
		return 1, &InvalidBoolError{Byte: v}
	}
	return 1, nil
}

func (b Byte) WriteTo(w io.Writer) (int64, error) { return write(w, []byte{byte(b)}) }
func (b Byte) Len() int                           { return 1 }

func (b *Byte) ReadFrom(r io.Reader) (int64, error) {
	v, err := readByte(r, 0)
	if err != nil {
		return 0, err
	}
	*b = Byte(v)
	return 1, nil
}

func (b UnsignedByte) WriteTo(w io.Writer) (int64, error) { return write(w, []byte{byte(b)}) }
func (b UnsignedByte) Len() int                           { return 1 }

func (b *UnsignedByte) ReadFrom(r io.Reader) (int64, error) {
	v, err := readByte(r, 0)
	if err != nil {
		return 0, err
	}
	*b = UnsignedByte(v)
	return 1, nil
}

func (a Angle) WriteTo(w io.Writer) (int64, error) { return write(w, []byte{byte(a)}) }
func (a Angle) Len() int                           { return 1 }

func (a *Angle) ReadFrom(r io.Reader) (int64, error) {
	v, err := readByte(r, 0)
	if err != nil {
		return 0, err
	}
	*a = Angle(v)
	return 1, nil
}

// ToDeg converts the angle to degrees in [0, 360).
func (a Angle) ToDeg() float32 { return float32(a) * 360 / 256 }

// NewAngle converts degrees to the nearest angle step.
func NewAngle(deg float32) Angle {
	return Angle(int32(math.Floor(float64(deg)*256/360)) & 0xFF)
}

func (s Short) WriteTo(w io.Writer) (int64, error) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(s))
	return write(w, buf[:])
}

func (s Short) Len() int { return 2 }

func (s *Short) ReadFrom(r io.Reader) (int64, error) {
	var buf [2]byte
	n, err := readFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*s = Short(binary.BigEndian.Uint16(buf[:]))
	return 2, nil
}

func (s UnsignedShort) WriteTo(w io.Writer) (int64, error) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(s))
	return write(w, buf[:])
}

func (s UnsignedShort) Len() int { return 2 }

func (s *UnsignedShort) ReadFrom(r io.Reader) (int64, error) {
	var buf [2]byte
	n, err := readFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*s = UnsignedShort(binary.BigEndian.Uint16(buf[:]))
	return 2, nil
}

func (i Int) WriteTo(w io.Writer) (int64, error) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(i))
	return write(w, buf[:])
}

func (i Int) Len() int { return 4 }

func (i *Int) ReadFrom(r io.Reader) (int64, error) {
	var buf [4]byte
	n, err := readFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*i = Int(binary.BigEndian.Uint32(buf[:]))
	return 4, nil
}

func (l Long) WriteTo(w io.Writer) (int64, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(l))
	return write(w, buf[:])
}

func (l Long) Len() int { return 8 }

func (l *Long) ReadFrom(r io.Reader) (int64, error) {
	var buf [8]byte
	n, err := readFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*l = Long(binary.BigEndian.Uint64(buf[:]))
	return 8, nil
}

func (f Float) WriteTo(w io.Writer) (int64, error) {
	return Int(math.Float32bits(float32(f))).WriteTo(w)
}

func (f Float) Len() int { return 4 }

func (f *Float) ReadFrom(r io.Reader) (int64, error) {
	var i Int
	n, err := i.ReadFrom(r)
	if err != nil {
		return n, err
	}
	*f = Float(math.Float32frombits(uint32(i)))
	return n, nil
}

func (d Double) WriteTo(w io.Writer) (int64, error) {
	return Long(math.Float64bits(float64(d))).WriteTo(w)
}

func (d Double) Len() int { return 8 }

func (d *Double) ReadFrom(r io.Reader) (int64, error) {
	var l Long
	n, err := l.ReadFrom(r)
	if err != nil {
		return n, err
	}
	*d = Double(math.Float64frombits(uint64(l)))
	return n, nil
}
