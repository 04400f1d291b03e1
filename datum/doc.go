// Package datum walks binary encoded values according to their writer
// schema without materializing them.
//
// Skip consumes exactly one encoded value and discards it. Map consumes
// the same bytes and additionally returns an index of byte offsets for
// array and record values:
//
//	r := binary.NewReader(f, binary.WithOffset(start))
//	node, err := datum.Map(r, s)
//	if err != nil {
//	    return err
//	}
//	rec := node.(*datum.RecordIndex)
//	offs, _ := rec.Get("items")
//
// For an array, Offsets holds the position before every chunk-size-th
// element of each block, plus the position after the last element of any
// block whose item count is not a multiple of the chunk size. The chunk
// counter restarts with every block. Offsets are raw content positions and
// carry no item counts or block framing.
//
// A failed traversal has already advanced the decoder; the decoder should
// not be reused without re-positioning it.
package datum
