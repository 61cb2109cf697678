// Package container reads and writes .cmpt365 files: a fixed 18-byte header
// describing an image, followed by its pixel bytes compressed with one of the
// codecs from the compression package.
package container

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dargueta/cmpt365"
	"github.com/dargueta/cmpt365/utilities/compression"
)

// Image is an uncompressed pixel buffer and the metadata stored with it. The
// container never looks at what the pixels mean, only at how many bytes there
// are; Pixels should hold Width * Height * ceil(BitsPerPixel / 8) bytes.
type Image struct {
	Width        uint32
	Height       uint32
	BitsPerPixel uint8
	Pixels       []byte
}

// SaveStats reports what [Save] did.
type SaveStats struct {
	// OriginalSize is the size of the uncompressed pixel buffer.
	OriginalSize int
	// CompressedSize is the total number of bytes written, header included.
	CompressedSize int
	// Elapsed is how long compressing the pixels took. It doesn't include
	// the time spent writing.
	Elapsed time.Duration
}

// Save compresses `img.Pixels` with the codec for `algorithm` and writes the
// container to `w`.
func Save(w io.Writer, img Image, algorithm compression.Algorithm) (SaveStats, error) {
	codec, err := compression.ForAlgorithm(algorithm)
	if err != nil {
		return SaveStats{}, err
	}

	start := time.Now()
	payload, sideInfo, err := codec.Encode(img.Pixels)
	elapsed := time.Since(start)
	if err != nil {
		return SaveStats{}, err
	}

	if uint64(len(payload)) > math.MaxUint32 {
		return SaveStats{}, cmpt365.ErrUnsupportedFormat.WithMessage(
			fmt.Sprintf("compressed payload of %d bytes is too large", len(payload)))
	}

	header := Header{
		Version:       CurrentVersion,
		Algorithm:     algorithm,
		SideInfo:      sideInfo,
		BitsPerPixel:  img.BitsPerPixel,
		Width:         img.Width,
		Height:        img.Height,
		PayloadLength: uint32(len(payload)),
	}
	headerBytes, _ := header.MarshalBinary()

	_, err = w.Write(headerBytes)
	if err != nil {
		return SaveStats{}, cmpt365.ErrIO.WithMessage("failed to write header").Wrap(err)
	}
	_, err = w.Write(payload)
	if err != nil {
		return SaveStats{}, cmpt365.ErrIO.WithMessage("failed to write payload").Wrap(err)
	}

	return SaveStats{
		OriginalSize:   len(img.Pixels),
		CompressedSize: len(headerBytes) + len(payload),
		Elapsed:        elapsed,
	}, nil
}

// ReadHeader reads and validates only the container header, leaving `r`
// positioned at the start of the payload.
func ReadHeader(r io.Reader) (Header, error) {
	data := make([]byte, HeaderSize)
	_, err := io.ReadFull(r, data)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, cmpt365.ErrCorruption.WithMessage(
				"container header is truncated").Wrap(io.ErrUnexpectedEOF)
		}
		return Header{}, cmpt365.ErrIO.Wrap(err)
	}

	var header Header
	err = header.UnmarshalBinary(data)
	if err != nil {
		return Header{}, err
	}
	return header, nil
}

// Load reads a container from `r` and decompresses it. Decompressed pixels
// must exactly fill the image described by the header, or this fails with
// [cmpt365.ErrCorruption].
func Load(r io.Reader) (Image, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return Image{}, err
	}

	// The length comes from the file, so don't trust it for preallocation.
	payload, err := io.ReadAll(io.LimitReader(r, int64(header.PayloadLength)))
	if err != nil {
		return Image{}, cmpt365.ErrIO.Wrap(err)
	}
	if uint64(len(payload)) < uint64(header.PayloadLength) {
		return Image{}, cmpt365.ErrCorruption.WithMessage(
			fmt.Sprintf(
				"container payload is truncated: expected %d bytes, got %d",
				header.PayloadLength,
				len(payload),
			),
		).Wrap(io.ErrUnexpectedEOF)
	}

	expectedSize := header.ExpectedPixelBytes()
	limit := math.MaxInt
	if expectedSize < uint64(math.MaxInt) {
		limit = int(expectedSize)
	}

	// UnmarshalBinary already checked the algorithm.
	codec, _ := compression.ForAlgorithm(header.Algorithm)
	pixels, err := codec.Decode(payload, header.SideInfo, limit)
	if err != nil {
		return Image{}, err
	}

	if uint64(len(pixels)) != expectedSize {
		return Image{}, cmpt365.ErrCorruption.WithMessage(
			fmt.Sprintf(
				"decompressed %d bytes but a %d x %d image at %d bpp needs %d",
				len(pixels),
				header.Width,
				header.Height,
				header.BitsPerPixel,
				expectedSize,
			),
		)
	}

	return Image{
		Width:        header.Width,
		Height:       header.Height,
		BitsPerPixel: header.BitsPerPixel,
		Pixels:       pixels,
	}, nil
}
