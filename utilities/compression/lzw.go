package compression

import (
	"fmt"

	"github.com/dargueta/cmpt365"
)

// phraseKey identifies a dictionary phrase by the code of everything but its
// last byte, plus that last byte. This is equivalent to keying on the entire
// phrase but doesn't require storing the phrases themselves.
type phraseKey struct {
	prefix uint32
	suffix byte
}

// phraseSpan locates a phrase by its first occurrence in the decoder's output.
type phraseSpan struct {
	start  int
	length int
}

// CompressLZW encodes `data` with the dictionary codec. It returns the encoded
// codes and the width of each code in bytes, which the caller must keep in
// order to decompress the data later.
func CompressLZW(data []byte) ([]byte, int) {
	if len(data) == 0 {
		return []byte{}, 2
	}

	dictionary := make(map[phraseKey]uint32)
	nextCode := uint32(256)
	codes := make([]uint32, 0, len(data)/2+1)
	maxCode := uint32(0)

	emit := func(code uint32) {
		codes = append(codes, code)
		if code > maxCode {
			maxCode = code
		}
	}

	current := uint32(data[0])
	for _, nextByte := range data[1:] {
		key := phraseKey{prefix: current, suffix: nextByte}
		if code, ok := dictionary[key]; ok {
			current = code
			continue
		}

		emit(current)
		dictionary[key] = nextCode
		nextCode++
		current = uint32(nextByte)
	}
	emit(current)

	width := codeWidthFor(maxCode)
	output := make([]byte, 0, len(codes)*width)
	for _, code := range codes {
		for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
			output = append(output, byte(code>>shift))
		}
	}
	return output, width
}

// codeWidthFor returns the number of bytes needed to store `code`. It's never
// less than 2.
func codeWidthFor(code uint32) int {
	switch {
	case code <= 0xFFFF:
		return 2
	case code <= 0xFFFFFF:
		return 3
	default:
		return 4
	}
}

// DecompressLZW reverses [CompressLZW]. `width` must be the code width that
// CompressLZW returned.
func DecompressLZW(payload []byte, width int) ([]byte, error) {
	return DecompressLZWLimit(payload, width, NoLimit)
}

// DecompressLZWLimit is [DecompressLZW] but fails with [cmpt365.ErrCorruption]
// as soon as the output would grow past `limit` bytes. A small payload can
// expand quadratically, so callers that know the expected size should use this.
func DecompressLZWLimit(payload []byte, width int, limit int) ([]byte, error) {
	if width < 2 || width > 4 {
		return nil, cmpt365.ErrCorruption.WithMessage(
			fmt.Sprintf("invalid LZW code width %d, expected 2, 3, or 4", width))
	}
	if len(payload)%width != 0 {
		return nil, cmpt365.ErrCorruption.WithMessage(
			fmt.Sprintf(
				"LZW data length %d isn't a multiple of the code width %d",
				len(payload),
				width,
			),
		)
	}

	output := make([]byte, 0, initialCapacity(len(payload)*2, limit))
	phrases := make([]phraseSpan, 0, len(payload)/width)
	nextCode := uint64(256)

	// The previous phrase emitted, as a span of `output`. previousStart is -1
	// until the first code has been decoded.
	previousStart := -1
	previousLength := 0

	for i := 0; i < len(payload); i += width {
		code := uint64(0)
		for _, b := range payload[i : i+width] {
			code = (code << 8) | uint64(b)
		}

		entryLength, ok := lzwEntryLength(code, nextCode, phrases, previousStart, previousLength)
		if !ok {
			return nil, cmpt365.ErrCorruption.WithMessage(
				fmt.Sprintf(
					"bad LZW code %d at offset %d, next code is %d", code, i, nextCode))
		}
		if limit >= 0 && entryLength > limit-len(output) {
			return nil, cmpt365.ErrCorruption.WithMessage(
				fmt.Sprintf("LZW data decodes to more than %d bytes", limit))
		}

		start := len(output)
		switch {
		case code < 256:
			output = append(output, byte(code))
		case code < nextCode:
			phrase := phrases[code-256]
			output = append(output, output[phrase.start:phrase.start+phrase.length]...)
		default:
			// The code being defined right now: the previous phrase followed by
			// its own first byte. This overlaps what we're writing, so it has to
			// be copied one byte at a time.
			for j := 0; j <= previousLength; j++ {
				output = append(output, output[previousStart+j])
			}
		}

		if previousStart >= 0 {
			// The new phrase is the previous one plus the first byte of this
			// one, which immediately follows it in the output.
			phrases = append(
				phrases,
				phraseSpan{start: previousStart, length: previousLength + 1},
			)
			nextCode++
		}
		previousStart = start
		previousLength = len(output) - start
	}
	return output, nil
}

// lzwEntryLength returns how many bytes `code` decodes to. It returns false if
// the code isn't a phrase the decoder knows or is about to define.
func lzwEntryLength(
	code, nextCode uint64, phrases []phraseSpan, previousStart, previousLength int,
) (int, bool) {
	switch {
	case code < 256:
		return 1, true
	case code < nextCode:
		return phrases[code-256].length, true
	case code == nextCode && previousStart >= 0:
		return previousLength + 1, true
	default:
		return 0, false
	}
}
