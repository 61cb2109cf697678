package bmp_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/cmpt365"
	"github.com/dargueta/cmpt365/bmp"
	ctesting "github.com/dargueta/cmpt365/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPixelData__StripsPadding(t *testing.T) {
	tests := []ctesting.BitmapSpec{
		{Width: 3, Height: 2, BitsPerPixel: 24},
		{Width: 5, Height: -4, BitsPerPixel: 8},
		{Width: 7, Height: 3, BitsPerPixel: 16},
		{Width: 4, Height: 4, BitsPerPixel: 32},
		{Width: 1, Height: 1, BitsPerPixel: 24, HeaderSize: 108},
	}

	for _, spec := range tests {
		t.Run(
			"",
			func(t *testing.T) {
				stream, expectedPixels := ctesting.NewBitmapStream(t, spec)

				fileHeader, infoHeader, err := bmp.Parse(stream)
				require.NoError(t, err)

				pixels, err := bmp.ReadPixelData(stream, fileHeader, infoHeader)
				require.NoError(t, err)
				assert.EqualValues(t, infoHeader.PixelBufferSize(), len(pixels))
				assert.Equal(t, expectedPixels, pixels)
			},
		)
	}
}

func TestReadPixelData__Unsupported(t *testing.T) {
	tests := []struct {
		Name        string
		BitsPerPix  uint16
		Compression bmp.CompressionType
	}{
		{"RLE8", 8, bmp.CompressionRLE8},
		{"bitfields", 32, bmp.CompressionBitfields},
		{"monochrome", 1, bmp.CompressionRGB},
		{"16 colors", 4, bmp.CompressionRGB},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				infoHeader := bmp.InfoHeader{
					HeaderSize:   40,
					Width:        2,
					Height:       2,
					BitsPerPixel: test.BitsPerPix,
					Compression:  test.Compression,
				}
				_, err := bmp.ReadPixelData(
					bytes.NewReader(make([]byte, 128)), bmp.FileHeader{DataOffset: 54}, infoHeader)
				assert.ErrorIs(t, err, cmpt365.ErrUnsupportedFormat)
			},
		)
	}
}

func TestReadPixelData__BadDimensions(t *testing.T) {
	infoHeader := bmp.InfoHeader{HeaderSize: 40, Width: 0, Height: 4, BitsPerPixel: 24}
	_, err := bmp.ReadPixelData(bytes.NewReader(nil), bmp.FileHeader{}, infoHeader)
	assert.ErrorIs(t, err, cmpt365.ErrFormat)
}

func TestReadPixelData__Truncated(t *testing.T) {
	file, _ := ctesting.BuildBitmap(
		t, ctesting.BitmapSpec{Width: 4, Height: 4, BitsPerPixel: 24})
	truncated := bytes.NewReader(file[:len(file)-5])

	fileHeader, infoHeader, err := bmp.Parse(truncated)
	require.NoError(t, err)

	_, err = bmp.ReadPixelData(truncated, fileHeader, infoHeader)
	assert.ErrorIs(t, err, cmpt365.ErrFormat)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadPixelData__DimensionsLargerThanFile(t *testing.T) {
	tests := []struct {
		Name   string
		Width  int32
		Height int32
	}{
		{"huge both ways", 0x40000000, 0x40000000},
		{"huge top-down", 0x40000000, -0x40000000},
		{"one row too many", 2, 3},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				// 54 bytes of headers plus room for exactly two 2-pixel rows.
				data := append(makeHeaders(test.Width, test.Height, 32), make([]byte, 16)...)
				reader := bytes.NewReader(data)

				fileHeader, infoHeader, err := bmp.Parse(reader)
				require.NoError(t, err)

				var pixels []byte
				assert.NotPanics(
					t,
					func() {
						pixels, err = bmp.ReadPixelData(reader, fileHeader, infoHeader)
					},
				)
				assert.ErrorIs(t, err, cmpt365.ErrFormat)
				assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
				assert.Nil(t, pixels)
			},
		)
	}
}

func TestReadPixelData__DataOffsetPastEnd(t *testing.T) {
	data := append(makeHeaders(1, 1, 8), 1, 2, 3, 4)
	reader := bytes.NewReader(data)

	fileHeader, infoHeader, err := bmp.Parse(reader)
	require.NoError(t, err)
	fileHeader.DataOffset = 1000

	_, err = bmp.ReadPixelData(reader, fileHeader, infoHeader)
	assert.ErrorIs(t, err, cmpt365.ErrFormat)
}
