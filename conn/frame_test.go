package conn

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/dynamitemc/froglight/protocol/codec"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(frame []byte) *frameReader {
	return &frameReader{r: bufio.NewReader(bytes.NewReader(frame))}
}

func TestFrameThreshold(t *testing.T) {
	var w frameWriter
	tests := []struct {
		size       int
		compressed bool
	}{
		{50, false},
		{255, false},
		{256, true},
		{300, true},
	}
	for _, tt := range tests {
		payload := bytes.Repeat([]byte{0x2A}, tt.size)
		frame, compressed, err := w.build(payload, 256)
		require.NoError(t, err)
		assert.Equal(t, tt.compressed, compressed, "size %d", tt.size)
		if compressed {
			assert.Less(t, len(frame), tt.size)
		}

		got, wire, gotCompressed, err := reader(frame).read(256)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
		assert.Equal(t, len(frame), wire)
		assert.Equal(t, tt.compressed, gotCompressed)
	}
}

func TestFrameBelowThresholdLayout(t *testing.T) {
	var w frameWriter
	frame, _, err := w.build([]byte{0x01, 0x02}, 256)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x00, 0x01, 0x02}, frame)

	frame, _, err = w.build([]byte{0x01, 0x02}, -1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01, 0x02}, frame)
}

func zlibBody(t *testing.T, declared int32, data []byte) []byte {
	t.Helper()
	var body bytes.Buffer
	body.Write(codec.AppendVarInt(nil, declared))
	zw := zlib.NewWriter(&body)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return append(codec.AppendVarInt(nil, int32(body.Len())), body.Bytes()...)
}

func TestFrameErrors(t *testing.T) {
	tests := []struct {
		name      string
		frame     []byte
		threshold int32
		want      error
	}{
		{"empty", []byte{0x00}, -1, ErrEmptyFrame},
		{"too large", []byte{0xFF, 0xFF, 0xFF, 0x7F}, -1, ErrFrameTooLarge},
		{"truncated", []byte{0x05, 0x01, 0x02}, -1, io.ErrUnexpectedEOF},
		{"short inflate", zlibBody(t, 10, []byte("abc")), 0, ErrBadCompression},
		{"long inflate", zlibBody(t, 2, []byte("abc")), 0, ErrBadCompression},
		{"declared too large", []byte{0x05, 0x80, 0x80, 0x80, 0x10, 0x00}, 0, ErrBadCompression},
		{"not zlib", []byte{0x04, 0x03, 0x01, 0x02, 0x03}, 0, ErrBadCompression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := reader(tt.frame).read(tt.threshold)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFrameCleanEOF(t *testing.T) {
	_, _, _, err := reader(nil).read(-1)
	assert.Equal(t, io.EOF, err)
}

func TestFrameReaderReusesInflater(t *testing.T) {
	var w frameWriter
	var stream bytes.Buffer
	for i := 0; i < 3; i++ {
		frame, _, err := w.build(bytes.Repeat([]byte{byte(i)}, 100), 10)
		require.NoError(t, err)
		stream.Write(frame)
	}
	r := reader(stream.Bytes())
	for i := 0; i < 3; i++ {
		got, _, compressed, err := r.read(10)
		require.NoError(t, err)
		assert.True(t, compressed)
		assert.Equal(t, bytes.Repeat([]byte{byte(i)}, 100), got)
	}
}

func TestThreshold(t *testing.T) {
	th := NewThreshold()
	assert.False(t, th.Enabled())
	assert.Equal(t, int32(-1), th.Load())
	th.Store(256)
	assert.True(t, th.Enabled())
	th.Store(-20)
	assert.Equal(t, int32(-1), th.Load())
}
