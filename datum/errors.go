package datum

import (
	"errors"
	"fmt"

	"github.com/signadot/avroidx/binary"
)

// ErrSchemaMismatch is returned when the index tree cannot be built for a
// schema, for example when a record names the same field twice, or when a
// schema is not usable for traversal.
var ErrSchemaMismatch = errors.New("schema mismatch")

// InvalidDiscriminantError is returned when a union discriminant does not
// select a branch.
type InvalidDiscriminantError struct {
	Index       int64
	BranchCount int64
}

func (e *InvalidDiscriminantError) Error() string {
	return fmt.Sprintf("invalid union discriminant %d for %d branches", e.Index, e.BranchCount)
}

// PathError records the structural position at which a traversal failed.
// PathErrors nest; the outermost names the outermost value.
type PathError struct {
	Where string
	Err   error
}

func (e *PathError) Error() string {
	return e.Where + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func at(err error, where string) error {
	return &PathError{Where: where, Err: err}
}

func atf(err error, format string, args ...any) error {
	return &PathError{Where: fmt.Sprintf(format, args...), Err: err}
}

// Path returns the structural context of err, outermost first.
func Path(err error) []string {
	var res []string
	for err != nil {
		var pe *PathError
		if !errors.As(err, &pe) {
			break
		}
		res = append(res, pe.Where)
		err = pe.Err
	}
	return res
}

// Kind classifies traversal errors.
type Kind int

const (
	KindIO Kind = iota
	KindMalformedVarint
	KindTruncatedStream
	KindInvalidUnionDiscriminant
	KindSchemaMismatch
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindMalformedVarint:
		return "MalformedVarint"
	case KindTruncatedStream:
		return "TruncatedStream"
	case KindInvalidUnionDiscriminant:
		return "InvalidUnionDiscriminant"
	case KindSchemaMismatch:
		return "SchemaMismatch"
	default:
		return "Unknown"
	}
}

// KindOf classifies err. Errors not produced by decoding or by the
// traversal itself are KindIO. Negative lengths are reported as
// KindMalformedVarint.
func KindOf(err error) Kind {
	var de *InvalidDiscriminantError
	switch {
	case errors.As(err, &de):
		return KindInvalidUnionDiscriminant
	case errors.Is(err, ErrSchemaMismatch):
		return KindSchemaMismatch
	case errors.Is(err, binary.ErrTruncated):
		return KindTruncatedStream
	case errors.Is(err, binary.ErrMalformedVarint), errors.Is(err, binary.ErrInvalidLength):
		return KindMalformedVarint
	}
	return KindIO
}
