package datum

import (
	"fmt"

	"github.com/signadot/avroidx/debug"
	"github.com/signadot/avroidx/schema"
)

// Map consumes exactly one encoded value of s from d, the same bytes Skip
// would, and returns its index. The result is Offsets for an array schema
// and *RecordIndex for a record schema. Every other schema is skipped
// and Map returns a nil Node.
//
// Nothing is returned on error, and d is left wherever the failure
// occurred.
func Map(d Decoder, s schema.Schema, opts ...MapOption) (Node, error) {
	o := &mapOpts{chunkSize: int64(GetChunkSize())}
	for _, opt := range opts {
		opt(o)
	}
	w := &walker{d: d, chunkSize: o.chunkSize}
	return w.mapValue(s)
}

func (w *walker) mapValue(s schema.Schema) (Node, error) {
	switch x := s.(type) {
	case *schema.Array:
		offsets, err := w.mapArray(x)
		if err != nil {
			return nil, err
		}
		return offsets, nil
	case *schema.Record:
		rec, err := w.mapRecord(x)
		if err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, w.skip(s)
	}
}

func (w *walker) mapArray(a *schema.Array) (Offsets, error) {
	offsets := Offsets{}
	var i int64
	err := w.readBlocks("array", func(n int64) error {
		for j := int64(0); j < n; j++ {
			if j%w.chunkSize == 0 {
				offsets = append(offsets, w.d.Position())
			}
			if err := w.skip(a.Items); err != nil {
				return atf(err, "array element %d", i)
			}
			i++
		}
		if n%w.chunkSize != 0 {
			offsets = append(offsets, w.d.Position())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if debug.Map() {
		debug.Logf("array: %d elements, %d offsets", i, len(offsets))
	}
	return offsets, nil
}

func (w *walker) mapRecord(r *schema.Record) (*RecordIndex, error) {
	res := &RecordIndex{Offset: w.d.Position()}
	for _, f := range r.Fields {
		n, err := w.mapValue(f.Schema)
		if err != nil {
			return nil, atf(err, "record field %q", f.Name)
		}
		if n == nil {
			continue
		}
		if _, exists := res.Get(f.Name); exists {
			return nil, atf(fmt.Errorf("%w: field %q indexed twice in %s", ErrSchemaMismatch, f.Name, r.Name), "record field %q", f.Name)
		}
		res.Fields = append(res.Fields, Field{Name: f.Name, Node: n})
	}
	if debug.Map() {
		debug.Logf("record %s at %d: %d indexed fields", r.Name, res.Offset, len(res.Fields))
	}
	return res, nil
}
