package schema

import (
	"fmt"
	"strings"
)

// names holds the named types defined so far in one Parse call.
type names struct {
	defined map[string]Schema
}

func newNames() *names {
	return &names{defined: map[string]Schema{}}
}

func (n *names) define(name Name, s Schema) error {
	full := name.FullName()
	if _, exists := n.defined[full]; exists {
		return fmt.Errorf("%w: %w %q", ErrParse, ErrDuplicateName, full)
	}
	n.defined[full] = s
	return nil
}

// lookup resolves ref relative to namespace ns. Unqualified names are
// tried in ns first and then in the null namespace.
func (n *names) lookup(ref, ns string) (Schema, Name, bool) {
	name := makeName(ref, ns)
	if s, ok := n.defined[name.FullName()]; ok {
		return s, name, true
	}
	if !strings.Contains(ref, ".") && ns != "" {
		if s, ok := n.defined[ref]; ok {
			return s, Name{Name: ref}, true
		}
	}
	return nil, name, false
}

// makeName splits a possibly dotted name; unqualified names take ns.
func makeName(name, ns string) Name {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return Name{Name: name[i+1:], Namespace: name[:i]}
	}
	return Name{Name: name, Namespace: ns}
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
