package schema

import (
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"
)

// Parse parses a schema document. Each call has its own set of named
// types; references to a name defined earlier in the document (including
// the enclosing record) become a *Link.
func Parse(data []byte) (Schema, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: empty schema", ErrParse)
	}
	p := &parser{names: newNames()}
	return p.parse(v, "")
}

// ParseFile reads and parses the schema stored at path.
func ParseFile(path string) (Schema, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

type parser struct {
	names *names
}

func (p *parser) parse(v any, ns string) (Schema, error) {
	switch x := v.(type) {
	case string:
		return p.parseName(x, ns)
	case []any:
		return p.parseUnion(x, ns)
	default:
		obj, ok := asObject(v)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %T in schema", ErrParse, v)
		}
		return p.parseObject(obj, ns)
	}
}

func (p *parser) parseName(name, ns string) (Schema, error) {
	if s := primitive(name); s != nil {
		return s, nil
	}
	target, full, ok := p.names.lookup(name, ns)
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", ErrParse, ErrUnknownType, name)
	}
	return &Link{Name: full, Target: target}, nil
}

func (p *parser) parseUnion(branches []any, ns string) (Schema, error) {
	u := &Union{Branches: make([]Schema, 0, len(branches))}
	seen := map[string]bool{}
	for i, b := range branches {
		s, err := p.parse(b, ns)
		if err != nil {
			return nil, fmt.Errorf("union branch %d: %w", i, err)
		}
		if s.Type() == UnionType {
			return nil, fmt.Errorf("%w: union branch %d: unions may not immediately contain unions", ErrParse, i)
		}
		key := branchKey(s)
		if seen[key] {
			return nil, fmt.Errorf("%w: union branch %d: %w %q", ErrParse, i, ErrDuplicateName, key)
		}
		seen[key] = true
		u.Branches = append(u.Branches, s)
	}
	return u, nil
}

func (p *parser) parseObject(obj map[string]any, ns string) (Schema, error) {
	tv, ok := obj["type"]
	if !ok {
		return nil, fmt.Errorf("%w: missing \"type\"", ErrParse)
	}
	t, ok := tv.(string)
	if !ok {
		// {"type": {...}} or {"type": [...]}
		return p.parse(tv, ns)
	}
	switch t {
	case "record", "error":
		return p.parseRecord(obj, ns)
	case "enum":
		return p.parseEnum(obj, ns)
	case "fixed":
		return p.parseFixed(obj, ns)
	case "array":
		items, ok := obj["items"]
		if !ok {
			return nil, fmt.Errorf("%w: array missing \"items\"", ErrParse)
		}
		s, err := p.parse(items, ns)
		if err != nil {
			return nil, fmt.Errorf("array items: %w", err)
		}
		return &Array{Items: s}, nil
	case "map":
		values, ok := obj["values"]
		if !ok {
			return nil, fmt.Errorf("%w: map missing \"values\"", ErrParse)
		}
		s, err := p.parse(values, ns)
		if err != nil {
			return nil, fmt.Errorf("map values: %w", err)
		}
		return &Map{Values: s}, nil
	}
	return p.parseName(t, ns)
}

func (p *parser) namedHeader(obj map[string]any, ns string) (Name, error) {
	n, _ := obj["name"].(string)
	if n == "" {
		return Name{}, fmt.Errorf("%w: named type missing \"name\"", ErrParse)
	}
	if explicit, ok := obj["namespace"].(string); ok {
		ns = explicit
	}
	name := makeName(n, ns)
	if !validName(name.Name) {
		return Name{}, fmt.Errorf("%w: invalid name %q", ErrParse, n)
	}
	return name, nil
}

func (p *parser) parseRecord(obj map[string]any, ns string) (Schema, error) {
	name, err := p.namedHeader(obj, ns)
	if err != nil {
		return nil, err
	}
	rec := &Record{Name: name}
	if err := p.names.define(name, rec); err != nil {
		return nil, err
	}
	fields, ok := obj["fields"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: record %s: \"fields\" must be a list", ErrParse, name)
	}
	seen := map[string]bool{}
	for i, fv := range fields {
		fobj, ok := asObject(fv)
		if !ok {
			return nil, fmt.Errorf("%w: record %s: field %d is not an object", ErrParse, name, i)
		}
		fname, _ := fobj["name"].(string)
		if !validName(fname) {
			return nil, fmt.Errorf("%w: record %s: field %d: invalid name %q", ErrParse, name, i, fname)
		}
		if seen[fname] {
			return nil, fmt.Errorf("%w: record %s: %w field %q", ErrParse, name, ErrDuplicateName, fname)
		}
		seen[fname] = true
		ft, ok := fobj["type"]
		if !ok {
			return nil, fmt.Errorf("%w: record %s: field %q missing \"type\"", ErrParse, name, fname)
		}
		fs, err := p.parse(ft, name.Namespace)
		if err != nil {
			return nil, fmt.Errorf("record %s: field %q: %w", name, fname, err)
		}
		rec.Fields = append(rec.Fields, &Field{Name: fname, Schema: fs})
	}
	return rec, nil
}

func (p *parser) parseEnum(obj map[string]any, ns string) (Schema, error) {
	name, err := p.namedHeader(obj, ns)
	if err != nil {
		return nil, err
	}
	syms, ok := obj["symbols"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: enum %s: \"symbols\" must be a list", ErrParse, name)
	}
	e := &Enum{Name: name, Symbols: make([]string, 0, len(syms))}
	seen := map[string]bool{}
	for _, sv := range syms {
		sym, ok := sv.(string)
		if !ok || !validName(sym) {
			return nil, fmt.Errorf("%w: enum %s: invalid symbol %v", ErrParse, name, sv)
		}
		if seen[sym] {
			return nil, fmt.Errorf("%w: enum %s: %w symbol %q", ErrParse, name, ErrDuplicateName, sym)
		}
		seen[sym] = true
		e.Symbols = append(e.Symbols, sym)
	}
	if err := p.names.define(name, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *parser) parseFixed(obj map[string]any, ns string) (Schema, error) {
	name, err := p.namedHeader(obj, ns)
	if err != nil {
		return nil, err
	}
	size, ok := toInt64(obj["size"])
	if !ok || size < 0 {
		return nil, fmt.Errorf("%w: fixed %s: invalid size %v", ErrParse, name, obj["size"])
	}
	f := &Fixed{Name: name, Size: size}
	if err := p.names.define(name, f); err != nil {
		return nil, err
	}
	return f, nil
}

func primitive(name string) *Primitive {
	switch name {
	case "null":
		return Null()
	case "boolean":
		return Boolean()
	case "int":
		return Int()
	case "long":
		return Long()
	case "float":
		return Float()
	case "double":
		return Double()
	case "string":
		return String()
	case "bytes":
		return Bytes()
	}
	return nil
}

func branchKey(s Schema) string {
	switch x := s.(type) {
	case *Record:
		return x.Name.FullName()
	case *Enum:
		return x.Name.FullName()
	case *Fixed:
		return x.Name.FullName()
	case *Link:
		return x.Name.FullName()
	}
	return s.Type().String()
}

func asObject(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		res := make(map[string]any, len(x))
		for k, v := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			res[ks] = v
		}
		return res, true
	}
	return nil, false
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}
