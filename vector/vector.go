// Package vector provides the fixed-dimensionality float32 vector value type
// and its binary codec. The encoding is the persisted wire format for every
// stored vector: the little-endian concatenation of the IEEE-754 bit patterns,
// 4 bytes per element. NaN and Inf pass through bit-for-bit.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vector is an ordered sequence of float32 weights. Vectors are treated as
// immutable once stored; callers must not mutate a vector after Insert.
type Vector []float32

// SizeMismatchError indicates a vector's byte length disagrees with the
// expected dimensionality.
type SizeMismatchError struct {
	ExpectedBytes int
	ActualBytes   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("vector size mismatch: expected %d bytes, got %d", e.ExpectedBytes, e.ActualBytes)
}

// Zero returns the all-zero vector of the given dimensionality. It is the
// defined result for unknown terms on the lookup path.
func Zero(size int) Vector {
	return make(Vector, size)
}

// Dim returns the dimensionality of the vector.
func (v Vector) Dim() int { return len(v) }

// EncodedLen returns the encoded byte length for the given dimensionality.
func EncodedLen(size int) int { return 4 * size }

// Encode serializes the vector to its binary form. Encoding is total: every
// finite or non-finite float32 round-trips exactly.
func (v Vector) Encode() []byte {
	b := make([]byte, 0, 4*len(v))
	for _, w := range v {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(w))
	}
	return b
}

// Decode deserializes a vector of the given dimensionality. It fails with
// *SizeMismatchError if the byte length is not exactly 4*size; downstream
// components validate vectors by byte length alone.
func Decode(b []byte, size int) (Vector, error) {
	if len(b) != 4*size {
		return nil, &SizeMismatchError{ExpectedBytes: 4 * size, ActualBytes: len(b)}
	}
	v := make(Vector, size)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
