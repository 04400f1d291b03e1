package schema

import "errors"

var (
	ErrParse         = errors.New("schema parse error")
	ErrUnknownType   = errors.New("unknown type")
	ErrDuplicateName = errors.New("duplicate name")
)
