package testing

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"testing"

	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// BitmapSpec describes a synthetic bitmap to generate with [BuildBitmap].
type BitmapSpec struct {
	Width  int32
	Height int32
	// BitsPerPixel must be a multiple of 8.
	BitsPerPixel uint16
	// HeaderSize is the size of the info header to write. Bytes past the 40
	// canonical ones are filled with 0xEE. Defaults to 40 if zero.
	HeaderSize  uint32
	Compression uint32
	// Pixels holds the unpadded rows in file order. If nil, random bytes are
	// used.
	Pixels []byte
}

// RandomBytes returns `size` random bytes, or fails the test.
func RandomBytes(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to generate %d random bytes", size)
	return data
}

// BuildBitmap generates a complete BMP file from `spec`. Rows are padded to
// four bytes with 0xAA so that tests can tell if padding leaks into the pixel
// data. The pixel buffer actually used is returned along with the file.
func BuildBitmap(t *testing.T, spec BitmapSpec) (file []byte, pixels []byte) {
	if spec.HeaderSize == 0 {
		spec.HeaderSize = 40
	}
	require.GreaterOrEqual(t, spec.HeaderSize, uint32(40), "info header too small to build")
	require.Zero(t, spec.BitsPerPixel%8, "bits per pixel must be a multiple of 8")

	absHeight := spec.Height
	if absHeight < 0 {
		absHeight = -absHeight
	}
	rowSize := int(spec.Width) * int(spec.BitsPerPixel/8)
	stride := ((int(spec.Width)*int(spec.BitsPerPixel) + 31) / 32) * 4

	pixels = spec.Pixels
	if pixels == nil {
		pixels = RandomBytes(t, rowSize*int(absHeight))
	}
	require.Len(t, pixels, rowSize*int(absHeight), "pixel buffer is the wrong size")

	dataOffset := 14 + int(spec.HeaderSize)
	imageSize := stride * int(absHeight)
	file = make([]byte, dataOffset+imageSize)
	writer := bytewriter.New(file)

	fileHeader := []any{
		[2]byte{'B', 'M'},
		uint32(len(file)),
		uint16(0),
		uint16(0),
		uint32(dataOffset),
	}
	infoHeader := []any{
		spec.HeaderSize,
		spec.Width,
		spec.Height,
		uint16(1),
		spec.BitsPerPixel,
		spec.Compression,
		uint32(imageSize),
		int32(2835),
		int32(2835),
		uint32(0),
		uint32(0),
	}
	for _, field := range append(fileHeader, infoHeader...) {
		require.NoError(t, binary.Write(writer, binary.LittleEndian, field))
	}

	for i := 40; i < int(spec.HeaderSize); i++ {
		_, err := writer.Write([]byte{0xEE})
		require.NoError(t, err)
	}

	padding := make([]byte, stride-rowSize)
	for i := range padding {
		padding[i] = 0xAA
	}
	for row := 0; row < int(absHeight); row++ {
		_, err := writer.Write(pixels[row*rowSize : (row+1)*rowSize])
		require.NoError(t, err)
		if len(padding) > 0 {
			_, err = writer.Write(padding)
			require.NoError(t, err)
		}
	}
	return file, pixels
}

// NewBitmapStream builds a bitmap with [BuildBitmap] and returns a seekable
// in-memory stream over it. Writes to the stream do not affect the returned
// pixel buffer.
func NewBitmapStream(t *testing.T, spec BitmapSpec) (io.ReadWriteSeeker, []byte) {
	file, pixels := BuildBitmap(t, spec)
	return bytesextra.NewReadWriteSeeker(file), pixels
}
