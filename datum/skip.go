package datum

import (
	"fmt"

	"github.com/signadot/avroidx/schema"
)

// walker carries the per-call traversal state. There is one walker per
// Skip, SkipSized or Map call.
type walker struct {
	d         Decoder
	sized     bool
	chunkSize int64
}

// Skip consumes exactly one encoded value of s from d.
//
// Size-prefixed array and map blocks are decoded item by item; their byte
// size is read and discarded.
func Skip(d Decoder, s schema.Schema) error {
	w := &walker{d: d}
	return w.skip(s)
}

// SkipSized is like Skip but uses the byte size of size-prefixed array and
// map blocks to skip them with a single d.Skip, without decoding their
// items. Plain blocks are still decoded item by item.
func SkipSized(d Decoder, s schema.Schema) error {
	w := &walker{d: d, sized: true}
	return w.skip(s)
}

func (w *walker) skip(s schema.Schema) error {
	switch x := s.(type) {
	case *schema.Primitive:
		return w.skipPrimitive(x)
	case *schema.Fixed:
		return w.d.Skip(x.Size)
	case *schema.Enum:
		return w.d.SkipLong()
	case *schema.Array:
		return w.skipArray(x)
	case *schema.Map:
		return w.skipMap(x)
	case *schema.Union:
		return w.skipUnion(x)
	case *schema.Record:
		return w.skipRecord(x)
	case *schema.Link:
		if x.Target == nil {
			return fmt.Errorf("%w: unresolved link %s", ErrSchemaMismatch, x.Name)
		}
		return w.skip(x.Target)
	case nil:
		return fmt.Errorf("%w: nil schema", ErrSchemaMismatch)
	default:
		return fmt.Errorf("%w: unsupported schema %T", ErrSchemaMismatch, s)
	}
}

func (w *walker) skipPrimitive(p *schema.Primitive) error {
	switch p.T {
	case schema.NullType:
		return w.d.SkipNull()
	case schema.BooleanType:
		return w.d.SkipBoolean()
	case schema.IntType:
		return w.d.SkipInt()
	case schema.LongType:
		return w.d.SkipLong()
	case schema.FloatType:
		return w.d.SkipFloat()
	case schema.DoubleType:
		return w.d.SkipDouble()
	case schema.StringType:
		return w.d.SkipString()
	case schema.BytesType:
		return w.d.SkipBytes()
	default:
		return fmt.Errorf("%w: %s is not a primitive type", ErrSchemaMismatch, p.T)
	}
}

func (w *walker) skipArray(a *schema.Array) error {
	var i int64
	return w.readBlocks("array", func(n int64) error {
		for j := int64(0); j < n; j++ {
			if err := w.skip(a.Items); err != nil {
				return atf(err, "array element %d", i)
			}
			i++
		}
		return nil
	})
}

func (w *walker) skipMap(m *schema.Map) error {
	var i int64
	return w.readBlocks("map", func(n int64) error {
		for j := int64(0); j < n; j++ {
			if err := w.d.SkipString(); err != nil {
				return atf(err, "map key %d", i)
			}
			if err := w.skip(m.Values); err != nil {
				return atf(err, "map value %d", i)
			}
			i++
		}
		return nil
	})
}

func (w *walker) skipUnion(u *schema.Union) error {
	index, err := w.d.ReadLong()
	if err != nil {
		return at(err, "union discriminant")
	}
	branch, ok := u.Branch(index)
	if !ok {
		return at(&InvalidDiscriminantError{Index: index, BranchCount: int64(len(u.Branches))}, "union discriminant")
	}
	if err := w.skip(branch); err != nil {
		return atf(err, "union branch %d", index)
	}
	return nil
}

func (w *walker) skipRecord(r *schema.Record) error {
	for _, f := range r.Fields {
		if err := w.skip(f.Schema); err != nil {
			return atf(err, "record field %q", f.Name)
		}
	}
	return nil
}
