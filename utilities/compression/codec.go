package compression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dargueta/cmpt365"
)

// Algorithm identifies a codec. The values are the ones stored in .cmpt365
// container headers and must not change.
type Algorithm uint8

const (
	AlgorithmDictionary  = Algorithm(1)
	AlgorithmWindowMatch = Algorithm(2)
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDictionary:
		return "lzw"
	case AlgorithmWindowMatch:
		return "lz77"
	default:
		return fmt.Sprintf("unknown (%d)", uint8(a))
	}
}

// ParseAlgorithm converts a user-supplied name into an [Algorithm]. It accepts
// the names returned by [Algorithm.String], the long names "dictionary" and
// "window", and the numeric IDs, all case-insensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lzw", "dictionary":
		return AlgorithmDictionary, nil
	case "lz77", "window", "window-match":
		return AlgorithmWindowMatch, nil
	}

	id, err := strconv.ParseUint(name, 10, 8)
	if err == nil {
		if _, err := ForAlgorithm(Algorithm(id)); err == nil {
			return Algorithm(id), nil
		}
	}
	return 0, cmpt365.ErrUnsupportedFormat.WithMessage(
		fmt.Sprintf("unrecognized compression algorithm %q", name))
}

// Codec is the capability pair every algorithm provides. Decode(Encode(x))
// must always give back x.
type Codec interface {
	Algorithm() Algorithm

	// Encode compresses `data`. The returned byte is side information the
	// decoder will need; codecs that don't need any return 0.
	Encode(data []byte) (payload []byte, sideInfo byte, err error)

	// Decode reverses Encode. Inconsistent input, or input that would decode
	// to more than `limit` bytes, fails with [cmpt365.ErrCorruption]. A negative
	// limit means there is none.
	Decode(payload []byte, sideInfo byte, limit int) ([]byte, error)
}

// NoLimit disables the output limit of the decompression functions.
const NoLimit = -1

// initialCapacity picks the starting size of a decoder's output buffer.
func initialCapacity(guess, limit int) int {
	if limit >= 0 && limit < guess {
		return limit
	}
	return guess
}

// ForAlgorithm returns the codec for the given algorithm ID, or
// [cmpt365.ErrUnsupportedFormat] if there is no such algorithm.
func ForAlgorithm(algorithm Algorithm) (Codec, error) {
	switch algorithm {
	case AlgorithmDictionary:
		return DictionaryCodec{}, nil
	case AlgorithmWindowMatch:
		return WindowMatchCodec{}, nil
	default:
		return nil, cmpt365.ErrUnsupportedFormat.WithMessage(
			fmt.Sprintf("no codec for algorithm ID %d", uint8(algorithm)))
	}
}

// DictionaryCodec is the [Codec] for [AlgorithmDictionary]. Its side
// information is the code width in bytes.
type DictionaryCodec struct{}

func (DictionaryCodec) Algorithm() Algorithm {
	return AlgorithmDictionary
}

func (DictionaryCodec) Encode(data []byte) ([]byte, byte, error) {
	payload, width := CompressLZW(data)
	return payload, byte(width), nil
}

func (DictionaryCodec) Decode(payload []byte, sideInfo byte, limit int) ([]byte, error) {
	return DecompressLZWLimit(payload, int(sideInfo), limit)
}

// WindowMatchCodec is the [Codec] for [AlgorithmWindowMatch]. It has no side
// information.
type WindowMatchCodec struct{}

func (WindowMatchCodec) Algorithm() Algorithm {
	return AlgorithmWindowMatch
}

func (WindowMatchCodec) Encode(data []byte) ([]byte, byte, error) {
	return CompressLZ77(data), 0, nil
}

// Decode ignores `sideInfo`.
func (WindowMatchCodec) Decode(payload []byte, sideInfo byte, limit int) ([]byte, error) {
	return DecompressLZ77Limit(payload, limit)
}
