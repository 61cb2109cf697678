// Package compression provides the two byte-stream codecs used by .cmpt365
// containers.
//
// Both work on whole in-memory buffers; there is no streaming interface.
//
// # Dictionary codec (LZW)
//
// The dictionary starts with the 256 single-byte strings (codes 0-255). The
// encoder greedily extends the current phrase one byte at a time. When the
// extended phrase isn't in the dictionary, it emits the code for the current
// phrase, assigns the next free code to the extended one, and restarts with the
// byte that didn't fit. The dictionary is never reset or capped.
//
// Codes are written as fixed-width big-endian integers. The width is the
// smallest of 2, 3, or 4 bytes that can hold the largest code emitted, and
// since it can't be recovered from the stream itself, it's handed back to the
// caller to store alongside the payload.
//
// # Window-match codec (LZ77)
//
// The encoder looks back up to 4096 bytes for the longest earlier run matching
// the bytes at the current position, up to 255 bytes long. Matches of at least
// 3 bytes are written as a back-reference, everything else as a literal:
//
//	literal:  00 BB            BB = the byte
//	match:    01 DD DD LL      DDDD = distance back (big-endian), LL = length
//
// A match may overlap the bytes it produces (distance < length), e.g. "ABCABCABC"
// encodes as three literals followed by a single match of distance 3 and length
// 6. The search is exhaustive, so encoding is O(window * length).
package compression
