package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/cmpt365"
)

// Parse reads the file header and info header from the start of `r`. On
// success the reader is positioned at the first byte after the info header.
//
// It returns [cmpt365.ErrFormat] if the stream is truncated or doesn't start
// with "BM", and [cmpt365.ErrUnsupportedFormat] if the info header is smaller
// than [InfoHeaderSize] bytes.
func Parse(r io.Reader) (FileHeader, InfoHeader, error) {
	var rawFileHeader [FileHeaderSize]byte
	err := readFull(r, rawFileHeader[:], "file header")
	if err != nil {
		return FileHeader{}, InfoHeader{}, err
	}

	fileHeader, err := decodeFileHeader(rawFileHeader[:])
	if err != nil {
		return FileHeader{}, InfoHeader{}, err
	}

	var rawInfoHeader [InfoHeaderSize]byte
	err = readFull(r, rawInfoHeader[:4], "info header size")
	if err != nil {
		return FileHeader{}, InfoHeader{}, err
	}

	headerSize := binary.LittleEndian.Uint32(rawInfoHeader[:4])
	if headerSize < 4 {
		// The size includes itself, so anything smaller is nonsense.
		return FileHeader{}, InfoHeader{}, cmpt365.ErrFormat.WithMessage(
			fmt.Sprintf("info header size %d is impossibly small", headerSize))
	}

	// Read the rest of the header even if it turns out to be a variant we don't
	// support, so that truncation is reported as a format error first.
	canonicalLength := headerSize
	if canonicalLength > InfoHeaderSize {
		canonicalLength = InfoHeaderSize
	}
	err = readFull(r, rawInfoHeader[4:canonicalLength], "info header")
	if err != nil {
		return FileHeader{}, InfoHeader{}, err
	}

	if headerSize > InfoHeaderSize {
		extra := int64(headerSize - InfoHeaderSize)
		n, err := io.CopyN(io.Discard, r, extra)
		if err != nil {
			return FileHeader{}, InfoHeader{}, classifyReadError(
				err, fmt.Sprintf("info header truncated: %d of %d bytes", InfoHeaderSize+n, headerSize))
		}
	}

	if headerSize < InfoHeaderSize {
		return FileHeader{}, InfoHeader{}, cmpt365.ErrUnsupportedFormat.WithMessage(
			fmt.Sprintf(
				"info header is %d bytes, need at least %d", headerSize, InfoHeaderSize))
	}

	return fileHeader, decodeInfoHeader(rawInfoHeader[:]), nil
}

// ParseBytes is a convenience wrapper around [Parse] for data already in memory.
func ParseBytes(data []byte) (FileHeader, InfoHeader, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile opens the file at `path` and parses its headers.
//
// If the file can't be opened, the returned error is [cmpt365.ErrIO] wrapping
// the error from the OS, so `errors.Is(err, os.ErrNotExist)` still works.
func ParseFile(path string) (FileHeader, InfoHeader, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileHeader{}, InfoHeader{}, cmpt365.ErrIO.Wrap(err)
	}
	defer file.Close()
	return Parse(file)
}

func decodeFileHeader(data []byte) (FileHeader, error) {
	header := FileHeader{
		Signature:  [2]byte{data[0], data[1]},
		FileSize:   binary.LittleEndian.Uint32(data[2:]),
		Reserved1:  binary.LittleEndian.Uint16(data[6:]),
		Reserved2:  binary.LittleEndian.Uint16(data[8:]),
		DataOffset: binary.LittleEndian.Uint32(data[10:]),
	}
	if header.Signature != Signature {
		return FileHeader{}, cmpt365.ErrFormat.WithMessage(
			fmt.Sprintf("bad signature: expected `BM`, got %q", header.Signature[:]))
	}
	return header, nil
}

// decodeInfoHeader extracts the BITMAPINFOHEADER fields from the first 40
// bytes of `data`.
func decodeInfoHeader(data []byte) InfoHeader {
	return InfoHeader{
		HeaderSize:      binary.LittleEndian.Uint32(data[0:]),
		Width:           int32LE(data[4:]),
		Height:          int32LE(data[8:]),
		Planes:          binary.LittleEndian.Uint16(data[12:]),
		BitsPerPixel:    binary.LittleEndian.Uint16(data[14:]),
		Compression:     CompressionType(binary.LittleEndian.Uint32(data[16:])),
		ImageSize:       binary.LittleEndian.Uint32(data[20:]),
		XPixelsPerMeter: int32LE(data[24:]),
		YPixelsPerMeter: int32LE(data[28:]),
		ColorsUsed:      binary.LittleEndian.Uint32(data[32:]),
		ColorsImportant: binary.LittleEndian.Uint32(data[36:]),
	}
}

// int32LE decodes a little-endian two's-complement 32-bit integer.
func int32LE(data []byte) int32 {
	value := int64(binary.LittleEndian.Uint32(data))
	if value >= 1<<31 {
		value -= 1 << 32
	}
	return int32(value)
}

// readFull fills `buffer` from `r`. A short read is a format error since it
// means the file ended in the middle of a header; anything else is an I/O error.
func readFull(r io.Reader, buffer []byte, what string) error {
	n, err := io.ReadFull(r, buffer)
	if err != nil {
		return classifyReadError(
			err, fmt.Sprintf("%s truncated: got %d of %d bytes", what, n, len(buffer)))
	}
	return nil
}

func classifyReadError(err error, message string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return cmpt365.ErrFormat.WithMessage(message).Wrap(io.ErrUnexpectedEOF)
	}
	return cmpt365.ErrIO.Wrap(err)
}
