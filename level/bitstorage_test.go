package level

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitStorageLayout(t *testing.T) {
	s, err := NewBitStorage(5, 13, nil)
	require.NoError(t, err)
	require.Len(t, s.Raw(), 2)

	s.Set(0, 31)
	s.Set(1, 1)
	s.Set(12, 1)
	// Twelve 5-bit values fit in a long; the thirteenth starts the next one.
	assert.Equal(t, []uint64{31 | 1<<5, 1}, s.Raw())
	assert.Equal(t, 31, s.Get(0))
	assert.Equal(t, 1, s.Swap(12, 7))
	assert.Equal(t, 7, s.Get(12))
}

func TestBitStorageValues(t *testing.T) {
	for _, bits := range []int{1, 4, 5, 9, 15} {
		s, err := NewBitStorage(bits, 4096, nil)
		require.NoError(t, err)
		top := 1<<bits - 1
		for i := 0; i < s.Len(); i++ {
			s.Set(i, i%(top+1))
		}
		for i := 0; i < s.Len(); i++ {
			require.Equal(t, i%(top+1), s.Get(i), "bits %d index %d", bits, i)
		}
	}
}

func TestBitStorageZeroBits(t *testing.T) {
	s, err := NewBitStorage(0, 4096, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Raw())
	assert.Equal(t, 0, s.Get(100))
	s.Set(100, 3)
	assert.Equal(t, 0, s.Swap(100, 3))
}

func TestBitStorageBounds(t *testing.T) {
	s, err := NewBitStorage(4, 16, nil)
	require.NoError(t, err)
	assert.PanicsWithValue(t, valueOutOfBounds, func() { s.Set(0, 16) })
	assert.PanicsWithValue(t, indexOutOfBounds, func() { s.Set(16, 1) })
	assert.PanicsWithValue(t, indexOutOfBounds, func() { s.Get(-1) })
}

func TestBitStorageSize(t *testing.T) {
	_, err := NewBitStorage(9, 256, make([]uint64, 36))
	var size *StorageSizeError
	require.ErrorAs(t, err, &size)
	assert.Equal(t, 37, size.Want)

	s, err := NewBitStorage(9, 256, make([]uint64, 37))
	require.NoError(t, err)
	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(s.EncodedLen()), n)

	other, _ := NewBitStorage(10, 256, nil)
	_, err = other.ReadFrom(&buf)
	assert.ErrorAs(t, err, &size)
}
