package compression

import (
	"fmt"

	"github.com/dargueta/cmpt365"
)

const (
	// WindowSize is how far back the encoder searches for a match.
	WindowSize = 4096
	// MinMatchLength is the shortest run worth encoding as a match.
	MinMatchLength = 3
	// MaxMatchLength is the longest run one match token can describe.
	MaxMatchLength = 255
)

const (
	tokenLiteral = byte(0)
	tokenMatch   = byte(1)
)

// CompressLZ77 encodes `data` with the window-match codec.
func CompressLZ77(data []byte) []byte {
	output := make([]byte, 0, len(data)+len(data)/2)

	for position := 0; position < len(data); {
		distance, length := findLongestMatch(data, position)
		if length >= MinMatchLength {
			output = append(
				output, tokenMatch, byte(distance>>8), byte(distance), byte(length))
			position += length
		} else {
			output = append(output, tokenLiteral, data[position])
			position++
		}
	}
	return output
}

// findLongestMatch searches the window preceding `position` for the longest run
// of bytes equal to those starting at `position`. The match may run past
// `position` into the bytes it's matching. If several are equally long, the
// closest one wins.
func findLongestMatch(data []byte, position int) (distance, length int) {
	maxDistance := min(position, WindowSize)
	maxLength := min(MaxMatchLength, len(data)-position)

	for candidate := 1; candidate <= maxDistance; candidate++ {
		n := 0
		for n < maxLength && data[position-candidate+n] == data[position+n] {
			n++
		}
		if n > length {
			distance = candidate
			length = n
			if length == maxLength {
				break
			}
		}
	}
	return distance, length
}

// DecompressLZ77 reverses [CompressLZ77].
func DecompressLZ77(payload []byte) ([]byte, error) {
	return DecompressLZ77Limit(payload, NoLimit)
}

// DecompressLZ77Limit is [DecompressLZ77] but fails with [cmpt365.ErrCorruption]
// as soon as the output would grow past `limit` bytes.
func DecompressLZ77Limit(payload []byte, limit int) ([]byte, error) {
	output := make([]byte, 0, initialCapacity(len(payload)*2, limit))

	for i := 0; i < len(payload); {
		flag := payload[i]
		switch flag {
		case tokenLiteral:
			if i+2 > len(payload) {
				return nil, cmpt365.ErrCorruption.WithMessage(
					fmt.Sprintf("truncated literal token at offset %d", i))
			}
			if limit >= 0 && len(output) >= limit {
				return nil, errOutputLimit(limit)
			}
			output = append(output, payload[i+1])
			i += 2

		case tokenMatch:
			if i+4 > len(payload) {
				return nil, cmpt365.ErrCorruption.WithMessage(
					fmt.Sprintf("truncated match token at offset %d", i))
			}
			distance := int(payload[i+1])<<8 | int(payload[i+2])
			length := int(payload[i+3])

			if distance == 0 || distance > len(output) {
				return nil, cmpt365.ErrCorruption.WithMessage(
					fmt.Sprintf(
						"match at offset %d has distance %d but only %d bytes are decoded",
						i,
						distance,
						len(output),
					),
				)
			}
			if length == 0 {
				return nil, cmpt365.ErrCorruption.WithMessage(
					fmt.Sprintf("match at offset %d has zero length", i))
			}

			if limit >= 0 && length > limit-len(output) {
				return nil, errOutputLimit(limit)
			}

			// Byte by byte, since the source can overlap what we're writing.
			start := len(output) - distance
			for j := 0; j < length; j++ {
				output = append(output, output[start+j])
			}
			i += 4

		default:
			return nil, cmpt365.ErrCorruption.WithMessage(
				fmt.Sprintf("invalid token flag 0x%02x at offset %d", flag, i))
		}
	}
	return output, nil
}

func errOutputLimit(limit int) error {
	return cmpt365.ErrCorruption.WithMessage(
		fmt.Sprintf("LZ77 data decodes to more than %d bytes", limit))
}
