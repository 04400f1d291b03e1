package binary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	maxVarintLen64 = 10
	maxVarintLen32 = 5
)

type byteSource interface {
	io.Reader
	io.ByteScanner
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerOpts)

type readerOpts struct {
	offset int64
}

// WithOffset sets the position reported for the first byte read.
func WithOffset(off int64) ReaderOption {
	return func(opts *readerOpts) {
		opts.offset = off
	}
}

// Reader decodes primitives from an underlying byte stream and keeps
// track of how many bytes have been consumed.
//
// A Reader may buffer ahead of what it has consumed, so the position of
// the underlying reader is not meaningful once a Reader wraps it.
type Reader struct {
	src byteSource
	pos int64
}

// NewReader returns a Reader consuming r. If r already implements
// io.ByteScanner it is read directly, otherwise it is buffered.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	o := &readerOpts{}
	for _, opt := range opts {
		opt(o)
	}
	src, ok := r.(byteSource)
	if !ok {
		src = bufio.NewReader(r)
	}
	return &Reader{src: src, pos: o.offset}
}

// Position returns the offset of the next byte to be consumed.
func (r *Reader) Position() int64 {
	return r.pos
}

// More reports whether at least one more byte is available.
func (r *Reader) More() (bool, error) {
	_, err := r.src.ReadByte()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := r.src.UnreadByte(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, eofErr(err)
	}
	r.pos++
	return b, nil
}

func (r *Reader) readUvarint(max int) (uint64, error) {
	var x uint64
	var s uint
	for i := 0; i < max; i++ {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		if b < 0x80 {
			if i == maxVarintLen64-1 && b > 1 {
				return 0, ErrMalformedVarint
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, ErrMalformedVarint
}

// ReadLong decodes a zigzag varint of up to 64 bits.
func (r *Reader) ReadLong() (int64, error) {
	u, err := r.readUvarint(maxVarintLen64)
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}

// ReadInt decodes a zigzag varint of up to 32 bits.
func (r *Reader) ReadInt() (int32, error) {
	u, err := r.readUvarint(maxVarintLen32)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, ErrMalformedVarint
	}
	return int32(uint32(u>>1) ^ -uint32(u&1)), nil
}

// Skip consumes n bytes.
func (r *Reader) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: skip %d", ErrInvalidLength, n)
	}
	m, err := io.CopyN(io.Discard, r.src, n)
	r.pos += m
	if err != nil {
		return eofErr(err)
	}
	return nil
}

// ReadFixed reads exactly n bytes.
func (r *Reader) ReadFixed(n int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: fixed %d", ErrInvalidLength, n)
	}
	// grow with the data actually read, n may be corrupt
	buf := &bytes.Buffer{}
	m, err := io.CopyN(buf, r.src, n)
	r.pos += m
	if err != nil {
		return nil, eofErr(err)
	}
	return buf.Bytes(), nil
}

func (r *Reader) readLength() (int64, error) {
	n, err := r.ReadLong()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	return n, nil
}

// ReadBytes reads a length-prefixed byte sequence.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.readLength()
	if err != nil {
		return nil, err
	}
	return r.ReadFixed(n)
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	d, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// SkipNull consumes nothing; null has no encoding.
func (r *Reader) SkipNull() error {
	return nil
}

// SkipBoolean consumes one byte.
func (r *Reader) SkipBoolean() error {
	return r.Skip(1)
}

// SkipInt consumes a zigzag varint int, checking its range.
func (r *Reader) SkipInt() error {
	_, err := r.ReadInt()
	return err
}

// SkipLong consumes a zigzag varint long.
func (r *Reader) SkipLong() error {
	_, err := r.ReadLong()
	return err
}

// SkipFloat consumes 4 bytes.
func (r *Reader) SkipFloat() error {
	return r.Skip(4)
}

// SkipDouble consumes 8 bytes.
func (r *Reader) SkipDouble() error {
	return r.Skip(8)
}

// SkipBytes consumes a length-prefixed byte sequence.
func (r *Reader) SkipBytes() error {
	n, err := r.readLength()
	if err != nil {
		return err
	}
	return r.Skip(n)
}

// SkipString is SkipBytes; strings are not validated as UTF-8.
func (r *Reader) SkipString() error {
	return r.SkipBytes()
}

func eofErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
