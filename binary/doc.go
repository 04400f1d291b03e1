// Package binary implements the primitive operations of the binary
// encoding: zigzag variable-length integers, little-endian IEEE 754 floats,
// and length-prefixed strings and bytes.
//
// Reader decodes (and mostly skips) primitives while tracking the byte
// position of the stream. The Append functions encode primitives onto a
// byte slice, in the manner of encoding/binary's AppendVarint.
package binary
