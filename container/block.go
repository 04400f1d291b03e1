package container

import (
	"bytes"
	"fmt"

	"github.com/signadot/avroidx/binary"
	"github.com/signadot/avroidx/datum"
	"github.com/signadot/avroidx/schema"
)

// Block is one decoded data block.
type Block struct {
	Index int
	// Count is the number of values in Data.
	Count int64
	// Start is the file offset of the block header.
	Start int64
	// Offset is the file offset of the (possibly compressed) block data.
	Offset int64
	// Size is the stored size of the block data.
	Size int64
	Data []byte

	absolute bool
}

// Absolute reports whether positions of the block's Decoder are file
// offsets. That is only the case for uncompressed blocks; otherwise they
// are offsets into Data.
func (b *Block) Absolute() bool {
	return b.absolute
}

// Decoder returns a reader over the block's values.
func (b *Block) Decoder() *binary.Reader {
	if b.absolute {
		return binary.NewReader(bytes.NewReader(b.Data), binary.WithOffset(b.Offset))
	}
	return binary.NewReader(bytes.NewReader(b.Data))
}

// Skip skips all Count values of s and checks that they span Data exactly.
func (b *Block) Skip(s schema.Schema) error {
	return b.skipAll(s, datum.Skip)
}

// SkipSized is Skip using datum.SkipSized.
func (b *Block) SkipSized(s schema.Schema) error {
	return b.skipAll(s, datum.SkipSized)
}

func (b *Block) skipAll(s schema.Schema, skip func(datum.Decoder, schema.Schema) error) error {
	d := b.Decoder()
	start := d.Position()
	for i := int64(0); i < b.Count; i++ {
		if err := skip(d, s); err != nil {
			return fmt.Errorf("block %d value %d: %w", b.Index, i, err)
		}
	}
	return b.checkEnd(d.Position() - start)
}

// Map indexes all Count values of s.
func (b *Block) Map(s schema.Schema, opts ...datum.MapOption) ([]datum.Node, error) {
	d := b.Decoder()
	start := d.Position()
	var nodes []datum.Node
	for i := int64(0); i < b.Count; i++ {
		n, err := datum.Map(d, s, opts...)
		if err != nil {
			return nil, fmt.Errorf("block %d value %d: %w", b.Index, i, err)
		}
		nodes = append(nodes, n)
	}
	if err := b.checkEnd(d.Position() - start); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (b *Block) checkEnd(consumed int64) error {
	if consumed != int64(len(b.Data)) {
		return fmt.Errorf("block %d: %w: %d of %d bytes", b.Index, ErrBlockSize, consumed, len(b.Data))
	}
	return nil
}
