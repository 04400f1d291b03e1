package schema

import "fmt"

// Type identifies a Schema variant.
type Type int

const (
	NullType Type = iota
	BooleanType
	IntType
	LongType
	FloatType
	DoubleType
	StringType
	BytesType
	FixedType
	EnumType
	ArrayType
	MapType
	UnionType
	RecordType
	LinkType
)

var typeNames = map[Type]string{
	NullType:    "null",
	BooleanType: "boolean",
	IntType:     "int",
	LongType:    "long",
	FloatType:   "float",
	DoubleType:  "double",
	StringType:  "string",
	BytesType:   "bytes",
	FixedType:   "fixed",
	EnumType:    "enum",
	ArrayType:   "array",
	MapType:     "map",
	UnionType:   "union",
	RecordType:  "record",
	LinkType:    "link",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsPrimitive reports whether t is one of the scalar types that carry no
// nested schema.
func (t Type) IsPrimitive() bool {
	return t >= NullType && t <= BytesType
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	k := string(d)
	for pt, name := range typeNames {
		if name == k {
			*t = pt
			return nil
		}
	}
	return fmt.Errorf("unknown type %q", k)
}
