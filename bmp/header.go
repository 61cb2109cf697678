package bmp

import "fmt"

// FileHeaderSize is the size of the BITMAPFILEHEADER structure, in bytes.
const FileHeaderSize = 14

// InfoHeaderSize is the size of the BITMAPINFOHEADER structure, the smallest
// info header this package understands.
const InfoHeaderSize = 40

// Signature is the magic number every BMP file starts with.
var Signature = [2]byte{'B', 'M'}

// CompressionType is the pixel storage method given in the info header.
type CompressionType uint32

const (
	CompressionRGB       = CompressionType(0)
	CompressionRLE8      = CompressionType(1)
	CompressionRLE4      = CompressionType(2)
	CompressionBitfields = CompressionType(3)
	CompressionJPEG      = CompressionType(4)
	CompressionPNG       = CompressionType(5)
)

func (c CompressionType) String() string {
	switch c {
	case CompressionRGB:
		return "BI_RGB"
	case CompressionRLE8:
		return "BI_RLE8"
	case CompressionRLE4:
		return "BI_RLE4"
	case CompressionBitfields:
		return "BI_BITFIELDS"
	case CompressionJPEG:
		return "BI_JPEG"
	case CompressionPNG:
		return "BI_PNG"
	default:
		return fmt.Sprintf("Unknown (%d)", uint32(c))
	}
}

// FileHeader is the decoded BITMAPFILEHEADER.
type FileHeader struct {
	Signature  [2]byte
	FileSize   uint32
	Reserved1  uint16
	Reserved2  uint16
	DataOffset uint32
}

// InfoHeader holds the BITMAPINFOHEADER fields. Larger header variants are
// truncated to these.
type InfoHeader struct {
	// HeaderSize is the size of the info header as stored in the file, which
	// may be larger than [InfoHeaderSize].
	HeaderSize uint32
	Width      int32
	// Height is negative for top-down images.
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     CompressionType
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// AbsHeight returns the number of rows in the image regardless of orientation.
func (h InfoHeader) AbsHeight() uint32 {
	if h.Height < 0 {
		// Done in 64 bits so that math.MinInt32 doesn't overflow.
		return uint32(-int64(h.Height))
	}
	return uint32(h.Height)
}

// IsTopDown returns true if the first row stored in the file is the top row
// of the image.
func (h InfoHeader) IsTopDown() bool {
	return h.Height < 0
}

// BytesPerPixel gives the number of whole bytes needed to hold one pixel, i.e.
// the bit depth rounded up to a multiple of 8 and divided by 8.
func (h InfoHeader) BytesPerPixel() uint {
	return (uint(h.BitsPerPixel) + 7) / 8
}

// PixelBufferSize is the size of a flat, unpadded pixel buffer for this image.
// Negative widths are treated as empty.
func (h InfoHeader) PixelBufferSize() uint64 {
	if h.Width <= 0 {
		return 0
	}
	return uint64(h.Width) * uint64(h.AbsHeight()) * uint64(h.BytesPerPixel())
}

// RowStride is the number of bytes one row takes up in the file, including
// padding.
func (h InfoHeader) RowStride() uint64 {
	if h.Width <= 0 {
		return 0
	}
	return ((uint64(h.Width)*uint64(h.BitsPerPixel) + 31) / 32) * 4
}
