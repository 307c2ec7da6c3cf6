package conn

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/klauspost/compress/zlib"
)

const (
	// MaxFrameLength is the largest frame body, the most a 3 byte varint
	// can hold.
	MaxFrameLength = 2097151
	// MaxUncompressedLength bounds the declared size of a compressed packet.
	MaxUncompressedLength = 8 << 20
)

// Threshold is the compression threshold shared by both halves of a
// connection. Negative means compression is off.
type Threshold struct {
	v atomic.Int32
}

func NewThreshold() *Threshold {
	t := new(Threshold)
	t.v.Store(-1)
	return t
}

func (t *Threshold) Load() int32 { return t.v.Load() }

func (t *Threshold) Store(n int32) {
	if n < 0 {
		n = -1
	}
	t.v.Store(n)
}

func (t *Threshold) Enabled() bool { return t.Load() >= 0 }

// frameWriter builds frames. It is owned by a write half and reuses its
// buffers between packets.
type frameWriter struct {
	body    bytes.Buffer
	frame   []byte
	deflate *zlib.Writer
}

// build wraps payload in a frame. The result is valid until the next call.
func (f *frameWriter) build(payload []byte, threshold int32) (frame []byte, compressed bool, err error) {
	f.body.Reset()
	switch {
	case threshold < 0:
		f.body.Write(payload)
	case len(payload) < int(threshold):
		f.body.WriteByte(0)
		f.body.Write(payload)
	default:
		compressed = true
		f.body.Write(codec.AppendVarInt(nil, int32(len(payload))))
		if f.deflate == nil {
			f.deflate = zlib.NewWriter(&f.body)
		} else {
			f.deflate.Reset(&f.body)
		}
		if _, err := f.deflate.Write(payload); err != nil {
			return nil, false, err
		}
		if err := f.deflate.Close(); err != nil {
			return nil, false, err
		}
	}
	if f.body.Len() > MaxFrameLength {
		return nil, false, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, f.body.Len())
	}
	f.frame = codec.AppendVarInt(f.frame[:0], int32(f.body.Len()))
	f.frame = append(f.frame, f.body.Bytes()...)
	return f.frame, compressed, nil
}

// frameReader splits frames off a byte stream.
type frameReader struct {
	r       *bufio.Reader
	inflate io.ReadCloser
}

// read returns the payload of the next frame and the number of bytes the
// frame took on the wire.
func (f *frameReader) read(threshold int32) (payload []byte, wire int, compressed bool, err error) {
	// A stream that ends between frames reports the plain io.EOF.
	if _, err := f.r.Peek(1); err != nil {
		return nil, 0, false, err
	}
	var length codec.VarInt
	n, err := length.ReadFrom(f.r)
	wire = int(n)
	if err != nil {
		return nil, wire, false, err
	}
	switch {
	case length == 0:
		return nil, wire, false, ErrEmptyFrame
	case length < 0 || length > MaxFrameLength:
		return nil, wire, false, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}
	body := make([]byte, length)
	nn, err := io.ReadFull(f.r, body)
	wire += nn
	if err != nil {
		return nil, wire, false, err
	}
	if threshold < 0 {
		return body, wire, false, nil
	}

	r := bytes.NewReader(body)
	var dataLength codec.VarInt
	if _, err := dataLength.ReadFrom(r); err != nil {
		return nil, wire, false, fmt.Errorf("%w: %v", ErrBadCompression, err)
	}
	if dataLength == 0 {
		return body[len(body)-r.Len():], wire, false, nil
	}
	if dataLength < 0 || dataLength > MaxUncompressedLength {
		return nil, wire, false, fmt.Errorf("%w: declared length %d", ErrBadCompression, dataLength)
	}
	payload, err = f.decompress(r, int(dataLength))
	return payload, wire, true, err
}

func (f *frameReader) decompress(r io.Reader, size int) ([]byte, error) {
	var err error
	if f.inflate == nil {
		f.inflate, err = zlib.NewReader(r)
	} else {
		err = f.inflate.(zlib.Resetter).Reset(r, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCompression, err)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(f.inflate, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCompression, err)
	}
	// The stream must end exactly at the declared length.
	if n, _ := f.inflate.Read(make([]byte, 1)); n != 0 {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBadCompression, size)
	}
	return payload, nil
}
