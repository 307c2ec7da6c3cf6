// Package codec implements the Minecraft wire types.
//
// Every type follows the same contract: WriteTo encodes the value and reports
// how many bytes were written, ReadFrom decodes into the receiver, and Len
// reports the encoded size without writing anything.
package codec

import (
	"errors"
	"fmt"
	"io"
)

// FieldEncoder is a value that can be written to the wire.
type FieldEncoder interface {
	io.WriterTo
	Len() int
}

// FieldDecoder is a value that can be read from the wire.
type FieldDecoder interface {
	io.ReaderFrom
}

// Field can be written and read. Pointers to the types of this package
// implement it.
type Field interface {
	FieldEncoder
	FieldDecoder
}

// Tuple is a sequence of fields encoded in order, with no framing.
// To decode, every element must be a pointer implementing FieldDecoder.
type Tuple []any

func (t Tuple) WriteTo(w io.Writer) (n int64, err error) {
	for i, v := range t {
		enc, ok := v.(io.WriterTo)
		if !ok {
			return n, fmt.Errorf("codec: tuple element %d (%T) is not an encoder", i, v)
		}
		nn, err := enc.WriteTo(w)
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (t Tuple) ReadFrom(r io.Reader) (n int64, err error) {
	for i, v := range t {
		dec, ok := v.(io.ReaderFrom)
		if !ok {
			return n, fmt.Errorf("codec: tuple element %d (%T) is not a decoder", i, v)
		}
		nn, err := dec.ReadFrom(r)
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (t Tuple) Len() (n int) {
	for _, v := range t {
		if enc, ok := v.(FieldEncoder); ok {
			n += enc.Len()
		}
	}
	return n
}

// asEncoder finds the encoder for a value, looking at ptr when the value
// type itself has no WriteTo method.
func asEncoder(v any, ptr any) (FieldEncoder, bool) {
	if enc, ok := v.(FieldEncoder); ok {
		return enc, true
	}
	enc, ok := ptr.(FieldEncoder)
	return enc, ok
}

func asDecoder(ptr any) (FieldDecoder, error) {
	dec, ok := ptr.(FieldDecoder)
	if !ok {
		return nil, fmt.Errorf("codec: %T is not a decoder", ptr)
	}
	return dec, nil
}

// readFull fills buf from r. Running out of input is reported as an
// EndOfBufferError carrying the expected and actual byte counts.
func readFull(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return n, &EndOfBufferError{Expected: len(buf), Got: n}
		}
		return n, &IOError{Err: err}
	}
	return n, nil
}

func write(w io.Writer, p []byte) (int64, error) {
	n, err := w.Write(p)
	if err != nil {
		return int64(n), &IOError{Err: err}
	}
	return int64(n), nil
}

// remaining reports how many unread bytes the reader holds, when it knows.
// *bytes.Reader and *bytes.Buffer both do.
func remaining(r io.Reader) (int, bool) {
	if l, ok := r.(interface{ Len() int }); ok {
		return l.Len(), true
	}
	return 0, false
}

// checkLength rejects length prefixes that are negative or that cannot
// possibly be satisfied by the rest of the input.
func checkLength(r io.Reader, length int, max int) error {
	if length < 0 || (max > 0 && length > max) {
		return fmt.Errorf("%w: %d", ErrLengthOutOfRange, length)
	}
	if left, ok := remaining(r); ok && length > left {
		return &EndOfBufferError{Expected: length, Got: left}
	}
	return nil
}
