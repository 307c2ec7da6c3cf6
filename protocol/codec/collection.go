package codec

import (
	"fmt"
	"io"
	"math"
)

// maxPrealloc bounds the capacity reserved up front when the reader cannot
// report how much input is left.
const maxPrealloc = 1024

// Array is a varint element count followed by the elements.
type Array[T any] []T

func (a Array[T]) WriteTo(w io.Writer) (n int64, err error) {
	if len(a) > math.MaxInt32 {
		return 0, &TryFromIntError{Value: int64(len(a)), Type: "VarInt"}
	}
	if n, err = VarInt(len(a)).WriteTo(w); err != nil {
		return n, err
	}
	nn, err := writeElems(w, a)
	return n + nn, err
}

func (a Array[T]) Len() int {
	return VarIntSize(int32(len(a))) + elemsLen(a)
}

func (a *Array[T]) ReadFrom(r io.Reader) (int64, error) {
	var count VarInt
	n, err := count.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if count < 0 {
		return n, fmt.Errorf("%w: %d", ErrLengthOutOfRange, count)
	}
	// Every element takes at least one byte on the wire.
	if err := checkLength(r, int(count), 0); err != nil {
		return n, err
	}
	capacity := int(count)
	if _, ok := remaining(r); !ok && capacity > maxPrealloc {
		capacity = maxPrealloc
	}
	elems := make([]T, 0, capacity)
	for i := 0; i < int(count); i++ {
		var v T
		dec, err := asDecoder(&v)
		if err != nil {
			return n, err
		}
		nn, err := dec.ReadFrom(r)
		n += nn
		if err != nil {
			return n, &ListError{Index: i, Total: int(count), Err: err}
		}
		elems = append(elems, v)
	}
	*a = elems
	return n, nil
}

// FixedArray is a sequence of a length known from context; no prefix is
// written. The slice must be sized before ReadFrom is called.
type FixedArray[T any] []T

func (a FixedArray[T]) WriteTo(w io.Writer) (int64, error) { return writeElems(w, a) }
func (a FixedArray[T]) Len() int                           { return elemsLen(a) }

func (a FixedArray[T]) ReadFrom(r io.Reader) (n int64, err error) {
	for i := range a {
		dec, err := asDecoder(&a[i])
		if err != nil {
			return n, err
		}
		nn, err := dec.ReadFrom(r)
		n += nn
		if err != nil {
			return n, &ListError{Index: i, Total: len(a), Err: err}
		}
	}
	return n, nil
}

func writeElems[T any](w io.Writer, elems []T) (n int64, err error) {
	for i := range elems {
		enc, ok := asEncoder(elems[i], &elems[i])
		if !ok {
			return n, fmt.Errorf("codec: %T is not an encoder", elems[i])
		}
		nn, err := enc.WriteTo(w)
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func elemsLen[T any](elems []T) (n int) {
	for i := range elems {
		if enc, ok := asEncoder(elems[i], &elems[i]); ok {
			n += enc.Len()
		}
	}
	return n
}

// Option is a presence flag followed by the value when present.
type Option[T any] struct {
	Has   bool
	Value T
}

// Some returns a present option.
func Some[T any](v T) Option[T] { return Option[T]{Has: true, Value: v} }

func (o Option[T]) WriteTo(w io.Writer) (int64, error) {
	n, err := Boolean(o.Has).WriteTo(w)
	if err != nil || !o.Has {
		return n, err
	}
	enc, ok := asEncoder(o.Value, &o.Value)
	if !ok {
		return n, fmt.Errorf("codec: %T is not an encoder", o.Value)
	}
	nn, err := enc.WriteTo(w)
	return n + nn, err
}

func (o Option[T]) Len() int {
	if !o.Has {
		return 1
	}
	if enc, ok := asEncoder(o.Value, &o.Value); ok {
		return 1 + enc.Len()
	}
	return 1
}

func (o *Option[T]) ReadFrom(r io.Reader) (int64, error) {
	var has Boolean
	n, err := has.ReadFrom(r)
	if err != nil {
		return n, err
	}
	o.Has = bool(has)
	if !o.Has {
		var zero T
		o.Value = zero
		return n, nil
	}
	dec, err := asDecoder(&o.Value)
	if err != nil {
		return n, err
	}
	nn, err := dec.ReadFrom(r)
	return n + nn, err
}

// ByteArray is a varint length followed by raw bytes.
type ByteArray []byte

func (b ByteArray) WriteTo(w io.Writer) (int64, error) {
	if len(b) > math.MaxInt32 {
		return 0, &TryFromIntError{Value: int64(len(b)), Type: "VarInt"}
	}
	n, err := VarInt(len(b)).WriteTo(w)
	if err != nil {
		return n, err
	}
	nn, err := write(w, b)
	return n + nn, err
}

func (b ByteArray) Len() int { return VarIntSize(int32(len(b))) + len(b) }

func (b *ByteArray) ReadFrom(r io.Reader) (int64, error) {
	var length VarInt
	n, err := length.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if err := checkLength(r, int(length), 0); err != nil {
		return n, err
	}
	buf := make([]byte, length)
	nn, err := readFull(r, buf)
	n += int64(nn)
	if err != nil {
		return n, err
	}
	*b = buf
	return n, nil
}

// RawBytes takes the rest of the input, with no length prefix. It can only
// be the last field of a packet.
type RawBytes []byte

func (b RawBytes) WriteTo(w io.Writer) (int64, error) { return write(w, b) }
func (b RawBytes) Len() int                           { return len(b) }

func (b *RawBytes) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), &IOError{Err: err}
	}
	*b = data
	return int64(len(data)), nil
}
