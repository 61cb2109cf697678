package bmp

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/cmpt365"
)

// ReadPixelData extracts the pixel rows of an uncompressed bitmap as a single
// flat buffer with the row padding removed. Rows are returned in the order they
// appear in the file; callers that care about orientation should check
// [InfoHeader.IsTopDown].
//
// Only BI_RGB images with 8, 16, 24, or 32 bits per pixel are handled. Anything
// else fails with [cmpt365.ErrUnsupportedFormat].
func ReadPixelData(r io.ReadSeeker, fileHeader FileHeader, infoHeader InfoHeader) ([]byte, error) {
	if infoHeader.Compression != CompressionRGB {
		return nil, cmpt365.ErrUnsupportedFormat.WithMessage(
			fmt.Sprintf("can't extract pixels compressed with %s", infoHeader.Compression))
	}

	switch infoHeader.BitsPerPixel {
	case 8, 16, 24, 32:
	default:
		return nil, cmpt365.ErrUnsupportedFormat.WithMessage(
			fmt.Sprintf("can't extract pixels from %d-bit image", infoHeader.BitsPerPixel))
	}

	if infoHeader.Width <= 0 || infoHeader.Height == 0 {
		return nil, cmpt365.ErrFormat.WithMessage(
			fmt.Sprintf(
				"invalid image dimensions %d x %d", infoHeader.Width, infoHeader.Height))
	}

	stride := infoHeader.RowStride()
	rowSize := uint64(infoHeader.Width) * uint64(infoHeader.BytesPerPixel())
	totalRows := uint64(infoHeader.AbsHeight())

	// The dimensions come from the file, so make sure the data is actually
	// there before allocating anything based on them.
	streamSize, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, cmpt365.ErrIO.Wrap(err)
	}
	available := uint64(0)
	if uint64(streamSize) > uint64(fileHeader.DataOffset) {
		available = uint64(streamSize) - uint64(fileHeader.DataOffset)
	}
	if stride > available/totalRows {
		return nil, cmpt365.ErrFormat.WithMessage(
			fmt.Sprintf(
				"%d x %d image at %d bpp needs %d rows of %d bytes but only %d bytes follow the headers",
				infoHeader.Width,
				infoHeader.Height,
				infoHeader.BitsPerPixel,
				totalRows,
				stride,
				available,
			),
		).Wrap(io.ErrUnexpectedEOF)
	}

	_, err = r.Seek(int64(fileHeader.DataOffset), io.SeekStart)
	if err != nil {
		return nil, cmpt365.ErrIO.Wrap(err)
	}

	pixels := make([]byte, 0, rowSize*totalRows)
	row := make([]byte, stride)
	for rowIndex := uint64(0); rowIndex < totalRows; rowIndex++ {
		n, err := io.ReadFull(r, row)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, cmpt365.ErrFormat.WithMessage(
					fmt.Sprintf(
						"pixel data truncated in row %d of %d: got %d of %d bytes",
						rowIndex,
						totalRows,
						n,
						stride,
					),
				).Wrap(io.ErrUnexpectedEOF)
			}
			return nil, cmpt365.ErrIO.Wrap(err)
		}
		pixels = append(pixels, row[:rowSize]...)
	}
	return pixels, nil
}
