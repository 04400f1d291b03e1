package schema

// Schema is a writer schema. The set of implementations is closed; code
// that dispatches on a Schema should switch over all of *Primitive, *Fixed,
// *Enum, *Array, *Map, *Union, *Record and *Link.
type Schema interface {
	Type() Type
	schema()
}

// Name is the full name of a named type.
type Name struct {
	Name      string
	Namespace string
}

// FullName returns the namespace-qualified name.
func (n Name) FullName() string {
	if n.Namespace == "" {
		return n.Name
	}
	return n.Namespace + "." + n.Name
}

func (n Name) String() string {
	return n.FullName()
}

// Primitive is a scalar schema: null, boolean, int, long, float, double,
// string or bytes.
type Primitive struct {
	T Type
}

func (p *Primitive) Type() Type { return p.T }
func (*Primitive) schema()      {}

var (
	nullSchema    = &Primitive{T: NullType}
	booleanSchema = &Primitive{T: BooleanType}
	intSchema     = &Primitive{T: IntType}
	longSchema    = &Primitive{T: LongType}
	floatSchema   = &Primitive{T: FloatType}
	doubleSchema  = &Primitive{T: DoubleType}
	stringSchema  = &Primitive{T: StringType}
	bytesSchema   = &Primitive{T: BytesType}
)

func Null() *Primitive    { return nullSchema }
func Boolean() *Primitive { return booleanSchema }
func Int() *Primitive     { return intSchema }
func Long() *Primitive    { return longSchema }
func Float() *Primitive   { return floatSchema }
func Double() *Primitive  { return doubleSchema }
func String() *Primitive  { return stringSchema }
func Bytes() *Primitive   { return bytesSchema }

// Fixed is a fixed-size byte sequence.
type Fixed struct {
	Name Name
	Size int64
}

func (*Fixed) Type() Type { return FixedType }
func (*Fixed) schema()    {}

// Enum is encoded as the ordinal of its symbol.
type Enum struct {
	Name    Name
	Symbols []string
}

func (*Enum) Type() Type { return EnumType }
func (*Enum) schema()    {}

type Array struct {
	Items Schema
}

func (*Array) Type() Type { return ArrayType }
func (*Array) schema()    {}

// Map has string keys; only the value schema is described.
type Map struct {
	Values Schema
}

func (*Map) Type() Type { return MapType }
func (*Map) schema()    {}

type Union struct {
	Branches []Schema
}

func (*Union) Type() Type { return UnionType }
func (*Union) schema()    {}

// Branch returns the branch selected by discriminant i.
func (u *Union) Branch(i int64) (Schema, bool) {
	if i < 0 || i >= int64(len(u.Branches)) {
		return nil, false
	}
	return u.Branches[i], true
}

type Field struct {
	Name   string
	Schema Schema
}

// Record fields are encoded in declaration order without framing.
type Record struct {
	Name   Name
	Fields []*Field
}

func (*Record) Type() Type { return RecordType }
func (*Record) schema()    {}

// Field returns the field called name, or nil.
func (r *Record) Field(name string) *Field {
	for _, f := range r.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Link refers to a named schema by name. Target may be the record that
// (transitively) contains the link.
type Link struct {
	Name   Name
	Target Schema
}

func (*Link) Type() Type { return LinkType }
func (*Link) schema()    {}

// Resolve follows links until a non-link schema is reached.
func Resolve(s Schema) Schema {
	for {
		l, ok := s.(*Link)
		if !ok || l.Target == nil {
			return s
		}
		s = l.Target
	}
}
