package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	v := Vector{1.0, -2.5, 0.0, 3.14159}

	b := v.Encode()
	assert.Len(t, b, 16)

	got, err := Decode(b, 4)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestEncodeNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	v := Vector{nan, float32(math.Inf(1)), float32(math.Inf(-1))}

	got, err := Decode(v.Encode(), 3)
	require.NoError(t, err)

	// NaN payload bits must survive the round trip exactly.
	assert.Equal(t, math.Float32bits(nan), math.Float32bits(got[0]))
	assert.True(t, math.IsInf(float64(got[1]), 1))
	assert.True(t, math.IsInf(float64(got[2]), -1))
}

func TestEncodeLittleEndian(t *testing.T) {
	// 1.0 is 0x3F800000; little-endian on disk.
	b := Vector{1.0}.Encode()
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, b)
}

func TestDecodeSizeMismatch(t *testing.T) {
	_, err := Decode(make([]byte, 10), 3)
	require.Error(t, err)

	var sm *SizeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 12, sm.ExpectedBytes)
	assert.Equal(t, 10, sm.ActualBytes)
}

func TestDecodeEmpty(t *testing.T) {
	v, err := Decode(nil, 0)
	require.NoError(t, err)
	assert.Len(t, v, 0)
}

func TestZero(t *testing.T) {
	z := Zero(5)
	assert.Equal(t, 5, z.Dim())
	for _, w := range z {
		assert.Zero(t, w)
	}
}
