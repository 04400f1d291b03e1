package datum

// Decoder is the set of primitive operations a traversal consumes.
// *binary.Reader implements it.
type Decoder interface {
	SkipNull() error
	SkipBoolean() error
	SkipInt() error
	SkipLong() error
	SkipFloat() error
	SkipDouble() error
	SkipString() error
	SkipBytes() error

	// ReadLong decodes a zigzag varint. It is used for block counts, block
	// sizes and union discriminants.
	ReadLong() (int64, error)
	// Position returns the offset of the next byte to be consumed.
	Position() int64
	// Skip consumes n raw bytes.
	Skip(n int64) error
}
