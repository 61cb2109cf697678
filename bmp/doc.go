// Package bmp decodes the structural headers of Windows bitmap files.
//
// A BMP file starts with a 14-byte file header:
//
//	Offset  Size  Field
//	0       2     Signature, always "BM"
//	2       4     Size of the whole file, in bytes
//	6       2     Reserved
//	8       2     Reserved
//	10      4     Offset of the pixel data from the start of the file
//
// It's immediately followed by an info header whose first four bytes give its
// total size. Several variants exist (BITMAPCOREHEADER, BITMAPINFOHEADER,
// BITMAPV4HEADER, BITMAPV5HEADER...), but every variant of 40 bytes or more
// begins with the same eleven BITMAPINFOHEADER fields, and those are the only
// ones decoded here. The OS/2 12-byte core header is not supported.
//
// All multi-byte integers are little-endian. Pixel rows are padded to a
// multiple of four bytes, and a negative height means the rows are stored top
// to bottom instead of bottom to top.
package bmp
