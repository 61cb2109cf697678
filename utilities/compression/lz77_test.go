package compression_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/cmpt365"
	c "github.com/dargueta/cmpt365/utilities/compression"
	ctesting "github.com/dargueta/cmpt365/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressLZ77__OverlappingMatch(t *testing.T) {
	original := []byte("ABCABCABC")

	compressed := c.CompressLZ77(original)
	assert.Equal(
		t,
		[]byte{0, 'A', 0, 'B', 0, 'C', 1, 0, 3, 6},
		compressed,
	)

	decompressed, err := c.DecompressLZ77(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestCompressLZ77__LiteralsOnly(t *testing.T) {
	compressed := c.CompressLZ77([]byte("ABAB"))
	// A match of 2 is below the minimum length, so everything is a literal.
	assert.Equal(t, []byte{0, 'A', 0, 'B', 0, 'A', 0, 'B'}, compressed)
}

func TestCompressLZ77__LongRunSplits(t *testing.T) {
	compressed := c.CompressLZ77(bytes.Repeat([]byte{7}, 1+255+10))
	assert.Equal(
		t,
		[]byte{0, 7, 1, 0, 1, 255, 1, 0, 1, 10},
		compressed,
	)
}

func TestCompressLZ77__PrefersClosestMatch(t *testing.T) {
	compressed := c.CompressLZ77([]byte("XYZ--XYZ--XYZ"))
	// The match runs into the bytes it produces.
	assert.Equal(
		t,
		[]byte{0, 'X', 0, 'Y', 0, 'Z', 0, '-', 0, '-', 1, 0, 5, 8},
		compressed,
	)
}

func TestCompressLZ77__RespectsWindow(t *testing.T) {
	marker := []byte("MARKER")
	data := append([]byte{}, marker...)
	data = append(data, ctesting.RandomBytes(t, c.WindowSize)...)
	data = append(data, marker...)

	compressed := c.CompressLZ77(data)
	for i := 0; i+3 < len(compressed); {
		if compressed[i] == 1 {
			distance := int(compressed[i+1])<<8 | int(compressed[i+2])
			assert.LessOrEqual(t, distance, c.WindowSize)
			i += 4
		} else {
			i += 2
		}
	}

	decompressed, err := c.DecompressLZ77(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestLZ77RoundTrip(t *testing.T) {
	tests := []struct {
		Name string
		Data []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x01}},
		{"all byte values", allByteValues()},
		{"homogenous", bytes.Repeat([]byte{100}, 9174)},
		{"heterogenous", ctesting.RandomBytes(t, 1852)},
		{"flag lookalikes", bytes.Repeat([]byte{0, 1, 2, 1, 0}, 50)},
		{"pixels", bytes.Repeat([]byte{0x10, 0x20, 0x30, 0x10, 0x20, 0x31}, 700)},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				compressed := c.CompressLZ77(test.Data)
				t.Logf("LZ77 %d -> %d bytes", len(test.Data), len(compressed))

				decompressed, err := c.DecompressLZ77(compressed)
				require.NoError(t, err)
				assert.Equal(t, len(test.Data), len(decompressed))
				assert.Equal(t, test.Data, decompressed)
			},
		)
	}
}

func TestDecompressLZ77__Corruption(t *testing.T) {
	tests := []struct {
		Name    string
		Payload []byte
	}{
		{"bad flag", []byte{2, 'A'}},
		{"truncated literal", []byte{0, 'A', 0}},
		{"truncated match", []byte{0, 'A', 1, 0, 1}},
		{"zero distance", []byte{0, 'A', 1, 0, 0, 3}},
		{"distance past start", []byte{0, 'A', 0, 'B', 1, 0, 3, 3}},
		{"match first", []byte{1, 0, 1, 3}},
		{"zero length", []byte{0, 'A', 1, 0, 1, 0}},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				output, err := c.DecompressLZ77(test.Payload)
				assert.ErrorIs(t, err, cmpt365.ErrCorruption)
				assert.Nil(t, output, "partial output returned on error")
			},
		)
	}
}

func TestDecompressLZ77Limit(t *testing.T) {
	original := []byte("ABCABCABC")
	compressed := c.CompressLZ77(original)

	decompressed, err := c.DecompressLZ77Limit(compressed, len(original))
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)

	// 0 and 2 stop on a literal, 8 stops on the match.
	for _, limit := range []int{0, 2, 8} {
		output, err := c.DecompressLZ77Limit(compressed, limit)
		assert.ErrorIsf(t, err, cmpt365.ErrCorruption, "limit %d not enforced", limit)
		assert.Nil(t, output)
	}
}
