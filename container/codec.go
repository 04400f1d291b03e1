package container

import (
	"bytes"
	stdbinary "encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

const (
	NullCodec      = "null"
	DeflateCodec   = "deflate"
	SnappyCodec    = "snappy"
	ZstandardCodec = "zstandard"
)

// Codec compresses and decompresses block data.
type Codec interface {
	Name() string
	Encode(src []byte) ([]byte, error)
	Decode(src []byte) ([]byte, error)
}

// NewCodec returns the codec called name. An empty name is the null codec.
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", NullCodec:
		return nullCodec{}, nil
	case DeflateCodec:
		return deflateCodec{}, nil
	case SnappyCodec:
		return snappyCodec{}, nil
	case ZstandardCodec:
		return newZstdCodec()
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCodec, name)
}

type nullCodec struct{}

func (nullCodec) Name() string                      { return NullCodec }
func (nullCodec) Encode(src []byte) ([]byte, error) { return src, nil }
func (nullCodec) Decode(src []byte) ([]byte, error) { return src, nil }

// deflateCodec is raw deflate, without zlib framing.
type deflateCodec struct{}

func (deflateCodec) Name() string { return DeflateCodec }

func (deflateCodec) Encode(src []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	fw, err := flate.NewWriter(buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(src); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (deflateCodec) Decode(src []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(src))
	defer fr.Close()
	d, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return d, nil
}

// snappyCodec blocks end with the big-endian CRC32 of the uncompressed data.
type snappyCodec struct{}

func (snappyCodec) Name() string { return SnappyCodec }

func (snappyCodec) Encode(src []byte) ([]byte, error) {
	d := snappy.Encode(nil, src)
	return stdbinary.BigEndian.AppendUint32(d, crc32.ChecksumIEEE(src)), nil
}

func (snappyCodec) Decode(src []byte) ([]byte, error) {
	if len(src) < 4 {
		return nil, fmt.Errorf("snappy: %w: block too short", ErrChecksum)
	}
	n := len(src) - 4
	d, err := snappy.Decode(nil, src[:n])
	if err != nil {
		return nil, fmt.Errorf("snappy: %w", err)
	}
	if crc32.ChecksumIEEE(d) != stdbinary.BigEndian.Uint32(src[n:]) {
		return nil, fmt.Errorf("snappy: %w", ErrChecksum)
	}
	return d, nil
}

type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstdCodec() (*zstdCodec, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &zstdCodec{enc: enc, dec: dec}, nil
}

func (*zstdCodec) Name() string { return ZstandardCodec }

func (c *zstdCodec) Encode(src []byte) ([]byte, error) {
	return c.enc.EncodeAll(src, make([]byte, 0, len(src))), nil
}

func (c *zstdCodec) Decode(src []byte) ([]byte, error) {
	d, err := c.dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstandard: %w", err)
	}
	return d, nil
}

func (c *zstdCodec) Close() error {
	c.dec.Close()
	return c.enc.Close()
}
