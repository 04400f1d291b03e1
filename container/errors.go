package container

import "errors"

var (
	ErrBadMagic     = errors.New("not an object container file")
	ErrNoSchema     = errors.New("missing avro.schema metadata")
	ErrSyncMismatch = errors.New("sync marker mismatch")
	ErrUnknownCodec = errors.New("unknown codec")
	ErrChecksum     = errors.New("block checksum mismatch")
	ErrBlockSize    = errors.New("block data not fully consumed")
)
