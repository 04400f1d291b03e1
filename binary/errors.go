package binary

import "errors"

var (
	// ErrMalformedVarint is returned when a variable-length integer runs
	// past its maximum width or does not fit its type.
	ErrMalformedVarint = errors.New("malformed varint")
	// ErrTruncated is returned when the stream ends inside a value.
	ErrTruncated = errors.New("truncated stream")
	// ErrInvalidLength is returned for negative string, bytes or skip lengths.
	ErrInvalidLength = errors.New("invalid length")
)
