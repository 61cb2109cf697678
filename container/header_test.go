package container_test

import (
	"testing"

	"github.com/dargueta/cmpt365"
	"github.com/dargueta/cmpt365/container"
	"github.com/dargueta/cmpt365/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderMarshalBinary__Layout(t *testing.T) {
	header := container.Header{
		Version:       1,
		Algorithm:     compression.AlgorithmDictionary,
		SideInfo:      3,
		BitsPerPixel:  24,
		Width:         0x01020304,
		Height:        0x0A0B0C0D,
		PayloadLength: 0xDEADBEEF,
	}

	data, err := header.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(
		t,
		[]byte{
			'C', 'M', 'P', 'T',
			1, 1, 3, 24,
			0x04, 0x03, 0x02, 0x01,
			0x0D, 0x0C, 0x0B, 0x0A,
			0xEF, 0xBE, 0xAD, 0xDE,
		},
		data,
	)
	assert.Len(t, data, container.HeaderSize)

	var decoded container.Header
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, header, decoded)
}

func TestHeaderUnmarshalBinary__Errors(t *testing.T) {
	valid, _ := container.Header{
		Version:   1,
		Algorithm: compression.AlgorithmWindowMatch,
	}.MarshalBinary()

	withByte := func(index int, value byte) []byte {
		data := append([]byte{}, valid...)
		data[index] = value
		return data
	}

	tests := []struct {
		Name     string
		Data     []byte
		Expected error
	}{
		{"short", valid[:container.HeaderSize-1], cmpt365.ErrCorruption},
		{"bad magic", withByte(0, 'X'), cmpt365.ErrCorruption},
		{"lowercase magic", withByte(3, 't'), cmpt365.ErrCorruption},
		{"version 0", withByte(4, 0), cmpt365.ErrUnsupportedFormat},
		{"version 2", withByte(4, 2), cmpt365.ErrUnsupportedFormat},
		{"algorithm 0", withByte(5, 0), cmpt365.ErrUnsupportedFormat},
		{"algorithm 99", withByte(5, 99), cmpt365.ErrUnsupportedFormat},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				header := container.Header{Width: 1234}
				err := header.UnmarshalBinary(test.Data)
				assert.ErrorIs(t, err, test.Expected)
				assert.EqualValues(t, 1234, header.Width, "header modified on failure")
			},
		)
	}
}

func TestHeaderExpectedPixelBytes(t *testing.T) {
	tests := []struct {
		BitsPerPixel uint8
		Expected     uint64
	}{
		{1, 6},
		{8, 6},
		{12, 12},
		{16, 12},
		{24, 18},
		{32, 24},
	}
	for _, test := range tests {
		header := container.Header{Width: 3, Height: 2, BitsPerPixel: test.BitsPerPixel}
		assert.Equalf(
			t, test.Expected, header.ExpectedPixelBytes(), "wrong size for %d bpp", test.BitsPerPixel)
	}
}
