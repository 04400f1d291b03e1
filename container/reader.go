package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/avroidx/binary"
	"github.com/signadot/avroidx/debug"
	"github.com/signadot/avroidx/schema"
)

const (
	SyncSize   = 16
	SchemaKey  = "avro.schema"
	CodecKey   = "avro.codec"
	magicValue = "Obj\x01"
)

// Reader reads the blocks of an object container file in order.
type Reader struct {
	br    *binary.Reader
	sync  []byte
	block int

	Schema     schema.Schema
	SchemaText []byte
	Meta       map[string][]byte
	Codec      Codec
}

// NewReader reads the file header from r and parses the writer schema.
// r should be positioned at the start of the file; block offsets are
// counted from there.
func NewReader(r io.Reader) (*Reader, error) {
	br := binary.NewReader(r)
	magic, err := br.ReadFixed(int64(len(magicValue)))
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != magicValue {
		return nil, ErrBadMagic
	}
	meta, err := readMeta(br)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	sync, err := br.ReadFixed(SyncSize)
	if err != nil {
		return nil, fmt.Errorf("read sync marker: %w", err)
	}
	text, ok := meta[SchemaKey]
	if !ok {
		return nil, ErrNoSchema
	}
	s, err := schema.Parse(text)
	if err != nil {
		return nil, err
	}
	codec, err := NewCodec(string(meta[CodecKey]))
	if err != nil {
		return nil, err
	}
	if debug.Container() {
		debug.Logf("container: codec %s, header %d bytes", codec.Name(), br.Position())
	}
	return &Reader{
		br:         br,
		sync:       sync,
		Schema:     s,
		SchemaText: text,
		Meta:       meta,
		Codec:      codec,
	}, nil
}

func readMeta(br *binary.Reader) (map[string][]byte, error) {
	meta := map[string][]byte{}
	for {
		count, err := br.ReadLong()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return meta, nil
		}
		if count < 0 {
			count = -count
			if _, err := br.ReadLong(); err != nil {
				return nil, err
			}
		}
		for i := int64(0); i < count; i++ {
			k, err := br.ReadString()
			if err != nil {
				return nil, err
			}
			v, err := br.ReadBytes()
			if err != nil {
				return nil, fmt.Errorf("value of %q: %w", k, err)
			}
			meta[k] = v
		}
	}
}

// Next returns the next block, or io.EOF after the last one.
func (r *Reader) Next() (*Block, error) {
	more, err := r.br.More()
	if err != nil {
		return nil, err
	}
	if !more {
		return nil, io.EOF
	}
	start := r.br.Position()
	count, err := r.br.ReadLong()
	if err != nil {
		return nil, fmt.Errorf("block %d count: %w", r.block, err)
	}
	size, err := r.br.ReadLong()
	if err != nil {
		return nil, fmt.Errorf("block %d size: %w", r.block, err)
	}
	offset := r.br.Position()
	raw, err := r.br.ReadFixed(size)
	if err != nil {
		return nil, fmt.Errorf("block %d data: %w", r.block, err)
	}
	sync, err := r.br.ReadFixed(SyncSize)
	if err != nil {
		return nil, fmt.Errorf("block %d sync: %w", r.block, err)
	}
	if !bytes.Equal(sync, r.sync) {
		return nil, fmt.Errorf("block %d: %w", r.block, ErrSyncMismatch)
	}
	data, err := r.Codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", r.block, err)
	}
	b := &Block{
		Index:    r.block,
		Count:    count,
		Start:    start,
		Offset:   offset,
		Size:     size,
		Data:     data,
		absolute: r.Codec.Name() == NullCodec,
	}
	if debug.Container() {
		debug.Logf("container: block %d: %d items, %d bytes at %d", b.Index, count, size, offset)
	}
	r.block++
	return b, nil
}

// Close releases codec resources.
func (r *Reader) Close() error {
	if c, ok := r.Codec.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
