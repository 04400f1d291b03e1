package datum

import (
	"os"
	"strconv"
)

// DefaultChunkSize is the number of array elements between recorded
// offsets within a block.
const DefaultChunkSize = 512

// GetChunkSize returns the chunk size used when no WithChunkSize option is
// given. It defaults to DefaultChunkSize and may be overridden with the
// AVROIDX_CHUNK_SIZE environment variable.
func GetChunkSize() int {
	if envSize := os.Getenv("AVROIDX_CHUNK_SIZE"); envSize != "" {
		if size, err := strconv.Atoi(envSize); err == nil && size > 0 {
			return size
		}
	}
	return DefaultChunkSize
}

// MapOption configures Map.
type MapOption func(*mapOpts)

type mapOpts struct {
	chunkSize int64
}

// WithChunkSize sets the chunk size. Non-positive sizes are ignored.
func WithChunkSize(n int) MapOption {
	return func(opts *mapOpts) {
		if n > 0 {
			opts.chunkSize = int64(n)
		}
	}
}
