package container

import (
	"crypto/rand"
	"fmt"
	"io"
	"slices"

	"github.com/signadot/avroidx/binary"
)

// WriterOption configures a Writer.
type WriterOption func(*writerOpts)

type writerOpts struct {
	codec string
	sync  []byte
	meta  map[string][]byte
}

// WithCodec selects the block codec by name.
func WithCodec(name string) WriterOption {
	return func(opts *writerOpts) {
		opts.codec = name
	}
}

// WithSync sets the sync marker instead of generating a random one.
func WithSync(sync [SyncSize]byte) WriterOption {
	return func(opts *writerOpts) {
		opts.sync = sync[:]
	}
}

// WithMeta adds a metadata entry. The schema and codec keys are reserved.
func WithMeta(key string, value []byte) WriterOption {
	return func(opts *writerOpts) {
		opts.meta[key] = value
	}
}

// Writer writes an object container file whose blocks are supplied
// already encoded.
type Writer struct {
	w     io.Writer
	sync  []byte
	codec Codec
}

// NewWriter writes the file header for schemaText to w.
func NewWriter(w io.Writer, schemaText []byte, opts ...WriterOption) (*Writer, error) {
	o := &writerOpts{meta: map[string][]byte{}}
	for _, opt := range opts {
		opt(o)
	}
	codec, err := NewCodec(o.codec)
	if err != nil {
		return nil, err
	}
	if o.sync == nil {
		o.sync = make([]byte, SyncSize)
		if _, err := rand.Read(o.sync); err != nil {
			return nil, err
		}
	}
	o.meta[SchemaKey] = schemaText
	o.meta[CodecKey] = []byte(codec.Name())

	keys := make([]string, 0, len(o.meta))
	for k := range o.meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	hdr := []byte(magicValue)
	hdr = binary.AppendBlockHeader(hdr, int64(len(keys)))
	for _, k := range keys {
		hdr = binary.AppendString(hdr, k)
		hdr = binary.AppendBytes(hdr, o.meta[k])
	}
	hdr = binary.AppendBlockHeader(hdr, 0)
	hdr = append(hdr, o.sync...)
	if _, err := w.Write(hdr); err != nil {
		return nil, err
	}
	return &Writer{w: w, sync: o.sync, codec: codec}, nil
}

// WriteBlock compresses data, the encoding of count values, and writes it
// as one block.
func (w *Writer) WriteBlock(count int64, data []byte) error {
	enc, err := w.codec.Encode(data)
	if err != nil {
		return fmt.Errorf("encode block: %w", err)
	}
	buf := binary.AppendLong(nil, count)
	buf = binary.AppendLong(buf, int64(len(enc)))
	buf = append(buf, enc...)
	buf = append(buf, w.sync...)
	_, err = w.w.Write(buf)
	return err
}

// Close releases codec resources. It does not close the underlying writer.
func (w *Writer) Close() error {
	if c, ok := w.codec.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
