package container

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dargueta/cmpt365"
	"github.com/dargueta/cmpt365/utilities/compression"
)

// HeaderSize is the size of an encoded [Header], in bytes.
const HeaderSize = 20

// CurrentVersion is the only container version this package reads or writes.
const CurrentVersion = 1

// FileExtension is the conventional extension for container files.
const FileExtension = ".cmpt365"

// Magic is the four-byte signature at the start of every container.
var Magic = [4]byte{'C', 'M', 'P', 'T'}

// Header is the fixed-size header at the start of a container. On disk it's
// laid out as follows, with all integers little-endian:
//
//	Offset  Size  Field
//	0       4     Magic, "CMPT"
//	4       1     Version
//	5       1     Algorithm
//	6       1     SideInfo
//	7       1     BitsPerPixel
//	8       4     Width
//	12      4     Height
//	16      4     PayloadLength
type Header struct {
	Version   uint8
	Algorithm compression.Algorithm
	// SideInfo is whatever extra value the codec needs for decoding. For the
	// dictionary codec it's the code width; the window-match codec doesn't use
	// it and it must be 0.
	SideInfo      uint8
	BitsPerPixel  uint8
	Width         uint32
	Height        uint32
	PayloadLength uint32
}

// ExpectedPixelBytes is the size the decompressed pixel buffer must have.
func (h Header) ExpectedPixelBytes() uint64 {
	bytesPerPixel := (uint64(h.BitsPerPixel) + 7) / 8
	return uint64(h.Width) * uint64(h.Height) * bytesPerPixel
}

// MarshalBinary implements [encoding.BinaryMarshaler]. It never fails.
func (h Header) MarshalBinary() ([]byte, error) {
	data := make([]byte, HeaderSize)
	copy(data[0:4], Magic[:])
	data[4] = h.Version
	data[5] = uint8(h.Algorithm)
	data[6] = h.SideInfo
	data[7] = h.BitsPerPixel
	binary.LittleEndian.PutUint32(data[8:], h.Width)
	binary.LittleEndian.PutUint32(data[12:], h.Height)
	binary.LittleEndian.PutUint32(data[16:], h.PayloadLength)
	return data, nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler]. `h` is only modified
// if decoding succeeds.
//
// A short buffer or bad magic number is [cmpt365.ErrCorruption]; a version or
// algorithm this package doesn't know is [cmpt365.ErrUnsupportedFormat].
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return cmpt365.ErrCorruption.WithMessage(
			fmt.Sprintf("container header needs %d bytes, got %d", HeaderSize, len(data)))
	}
	if !bytes.Equal(data[0:4], Magic[:]) {
		return cmpt365.ErrCorruption.WithMessage(
			fmt.Sprintf("bad magic number: expected %q, got %q", Magic[:], data[0:4]))
	}

	decoded := Header{
		Version:       data[4],
		Algorithm:     compression.Algorithm(data[5]),
		SideInfo:      data[6],
		BitsPerPixel:  data[7],
		Width:         binary.LittleEndian.Uint32(data[8:]),
		Height:        binary.LittleEndian.Uint32(data[12:]),
		PayloadLength: binary.LittleEndian.Uint32(data[16:]),
	}

	if decoded.Version != CurrentVersion {
		return cmpt365.ErrUnsupportedFormat.WithMessage(
			fmt.Sprintf(
				"container version %d not supported, expected %d",
				decoded.Version,
				CurrentVersion,
			),
		)
	}

	_, err := compression.ForAlgorithm(decoded.Algorithm)
	if err != nil {
		return err
	}

	*h = decoded
	return nil
}
