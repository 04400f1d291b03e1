package datum

import "github.com/goccy/go-yaml"

// OffsetKey is the key under which a record's start offset is rendered.
const OffsetKey = "__offset"

// Node is an index tree node: Offsets or *RecordIndex.
type Node interface {
	node()
}

// Offsets are the recorded byte positions of an array value.
type Offsets []int64

func (Offsets) node() {}

// MarshalYAML renders o as a plain sequence.
func (o Offsets) MarshalYAML() (any, error) {
	if o == nil {
		return []int64{}, nil
	}
	return []int64(o), nil
}

// Field is an indexed record field.
type Field struct {
	Name string
	Node Node
}

// RecordIndex is the index of a record value. Fields only holds the
// fields whose schema produced a node, in declaration order.
type RecordIndex struct {
	Offset int64
	Fields []Field
}

func (*RecordIndex) node() {}

// Get returns the node of the field called name.
func (r *RecordIndex) Get(name string) (Node, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return r.Fields[i].Node, true
		}
	}
	return nil, false
}

// MarshalYAML renders r as a mapping whose first key is OffsetKey,
// followed by the indexed fields in order.
func (r *RecordIndex) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, len(r.Fields)+1)
	ms = append(ms, yaml.MapItem{Key: OffsetKey, Value: r.Offset})
	for _, f := range r.Fields {
		ms = append(ms, yaml.MapItem{Key: f.Name, Value: f.Node})
	}
	return ms, nil
}
